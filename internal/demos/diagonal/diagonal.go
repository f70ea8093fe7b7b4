// Package diagonal moves a single pixel diagonally across the screen.
// It is the smallest possible game and a quick check that a display
// sink shows the right colours in the right places.
package diagonal

import (
	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
	"github.com/vovakirdan/sprog/internal/registry"
)

const (
	background = core.ColorDarkBlue
	dot        = core.ColorOrange
)

// Demo implements the diagonal pixel demo.
type Demo struct {
	engine.Base
	x, y int
}

// New creates a new diagonal demo instance.
func New() *Demo {
	return &Demo{}
}

// ID returns the unique identifier for this demo.
func (d *Demo) ID() string {
	return "diagonal"
}

// Title returns the display name for this demo.
func (d *Demo) Title() string {
	return "Diagonal"
}

// Description returns a one-line summary.
func (d *Demo) Description() string {
	return "One pixel walking from corner to corner"
}

// Init puts the pixel in the top-left corner.
func (d *Demo) Init(*engine.Runtime) {
	d.x, d.y = 0, 0
}

// Update moves the pixel one step down and right, starting over once it
// has left the bottom of the screen.
func (d *Demo) Update(rt *engine.Runtime) {
	d.x++
	d.y++
	if d.y >= rt.Display().Height() {
		d.x, d.y = 0, 0
	}
}

// Draw clears the screen and plots the pixel. Past the right edge the
// write is clipped.
func (d *Demo) Draw(rt *engine.Runtime) {
	fb := rt.Display()
	fb.Clear(background)
	fb.Set(d.x, d.y, dot)
}

func init() {
	registry.Register("diagonal", func() registry.Demo {
		return New()
	})
}
