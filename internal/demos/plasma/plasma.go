// Package plasma draws a colour-cycling plasma field using a sine lookup
// table and 4x4 pixel blocks.
package plasma

import (
	"math"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
	"github.com/vovakirdan/sprog/internal/registry"
)

const (
	blockSize = 4
	tableSize = 256
	timeStep  = 0.1
)

// Demo implements the plasma demo.
type Demo struct {
	engine.Base
	sin    [tableSize]float64
	time   float64
	offset int // Palette rotation, 0-23
}

// New creates a new plasma demo instance.
func New() *Demo {
	return &Demo{}
}

// ID returns the unique identifier for this demo.
func (d *Demo) ID() string {
	return "plasma"
}

// Title returns the display name for this demo.
func (d *Demo) Title() string {
	return "Plasma"
}

// Description returns a one-line summary.
func (d *Demo) Description() string {
	return "Sine plasma cycling through all 24 colours"
}

// Init fills the sine table and resets the animation.
func (d *Demo) Init(*engine.Runtime) {
	for i := range d.sin {
		d.sin[i] = math.Sin(float64(i) * 2 * math.Pi / tableSize)
	}
	d.time = 0
	d.offset = 0
}

func (d *Demo) fastSin(v float64) float64 {
	return d.sin[int(v*40)&(tableSize-1)]
}

// Update advances time and rotates the palette by one entry.
func (d *Demo) Update(*engine.Runtime) {
	d.time += timeStep
	d.offset = (d.offset + 1) % core.PaletteSize
}

// Draw paints the field block by block.
func (d *Demo) Draw(rt *engine.Runtime) {
	fb := rt.Display()
	cols := (fb.Width() + blockSize - 1) / blockSize
	rows := (fb.Height() + blockSize - 1) / blockSize

	for by := 0; by < rows; by++ {
		for bx := 0; bx < cols; bx++ {
			v := (d.fastSin(float64(bx)*0.5+d.time) + d.fastSin(float64(by)*0.4+d.time*1.2)) * 0.5
			fb.FillRect(core.NewRect(bx*blockSize, by*blockSize, blockSize, blockSize), d.colorAt(v))
		}
	}
}

// colorAt maps a plasma value in [-1, 1] to a rotated palette index.
func (d *Demo) colorAt(v float64) core.Color {
	n := (int(v*12) + d.offset) % core.PaletteSize
	if n < 0 {
		n += core.PaletteSize
	}
	return core.Color(n)
}

func init() {
	registry.Register("plasma", func() registry.Demo {
		return New()
	})
}
