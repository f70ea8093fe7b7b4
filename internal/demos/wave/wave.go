// Package wave draws thick horizontal bands that sway along a sine curve.
package wave

import (
	"math"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
	"github.com/vovakirdan/sprog/internal/registry"
)

const (
	rowStep   = 8 // Vertical distance between bands
	bandH     = 6
	halfWidth = 3 // Band spans [centre-3, centre+4)
	timeStep  = 0.05
)

// gradient is the band colour cycle, cool to warm.
var gradient = []core.Color{
	core.ColorCyan,
	core.ColorBlue,
	core.ColorDarkBlue,
	core.ColorGreen,
	core.ColorBrightGreen,
	core.ColorLightGreen,
	core.ColorYellow,
	core.ColorOrange,
	core.ColorRed,
}

// Demo implements the wave demo.
type Demo struct {
	engine.Base
	time float64
}

// New creates a new wave demo instance.
func New() *Demo {
	return &Demo{}
}

// ID returns the unique identifier for this demo.
func (d *Demo) ID() string {
	return "wave"
}

// Title returns the display name for this demo.
func (d *Demo) Title() string {
	return "Wave"
}

// Description returns a one-line summary.
func (d *Demo) Description() string {
	return "Flowing colour bands"
}

// Update advances time.
func (d *Demo) Update(*engine.Runtime) {
	d.time += timeStep
}

// Draw paints one band every rowStep rows.
func (d *Demo) Draw(rt *engine.Runtime) {
	fb := rt.Display()
	fb.Clear(core.ColorBlack)

	mid := fb.Width() / 2
	amp := float64(fb.Width()) * 30 / 160

	for y := 0; y < fb.Height(); y += rowStep {
		centre := int(amp*math.Sin(float64(y)*0.1+d.time)) + mid
		c := gradient[int((float64(y)+d.time*20)/16)%len(gradient)]
		fb.FillRect(core.NewRect(centre-halfWidth, y, 2*halfWidth+1, bandH), c)
	}
}

func init() {
	registry.Register("wave", func() registry.Demo {
		return New()
	})
}
