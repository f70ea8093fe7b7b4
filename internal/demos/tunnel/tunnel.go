// Package tunnel draws concentric colour rings that rush towards the viewer.
package tunnel

import (
	"math"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
	"github.com/vovakirdan/sprog/internal/registry"
)

const (
	blockSize = 4
	timeStep  = 0.08
)

// Demo implements the tunnel demo.
type Demo struct {
	engine.Base
	time float64
}

// New creates a new tunnel demo instance.
func New() *Demo {
	return &Demo{}
}

// ID returns the unique identifier for this demo.
func (d *Demo) ID() string {
	return "tunnel"
}

// Title returns the display name for this demo.
func (d *Demo) Title() string {
	return "Tunnel"
}

// Description returns a one-line summary.
func (d *Demo) Description() string {
	return "Rings flying out of the centre of the screen"
}

// Update advances time.
func (d *Demo) Update(*engine.Runtime) {
	d.time += timeStep
}

// Draw colours each block by its distance from the centre.
// The block sitting exactly on the centre is left black.
func (d *Demo) Draw(rt *engine.Runtime) {
	fb := rt.Display()
	fb.Clear(core.ColorBlack)

	cx, cy := fb.Width()/2, fb.Height()/2
	for y := 0; y < fb.Height(); y += blockSize {
		for x := 0; x < fb.Width(); x += blockSize {
			dist := math.Hypot(float64(x-cx), float64(y-cy))
			if dist == 0 {
				continue
			}
			fb.FillRect(core.NewRect(x, y, blockSize, blockSize), ring(dist, d.time))
		}
	}
}

// ring maps a distance to a palette index that shifts inwards over time.
func ring(dist, t float64) core.Color {
	n := int(dist*0.5-t*10) % core.PaletteSize
	if n < 0 {
		n += core.PaletteSize
	}
	return core.Color(n)
}

func init() {
	registry.Register("tunnel", func() registry.Demo {
		return New()
	})
}
