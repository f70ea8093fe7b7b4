// Package mover is an interactive demo: the primary direction cluster moves
// a sprite, the secondary cluster changes its colour, and the overlay shows
// the frame counter and the longest current button hold.
package mover

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
	"github.com/vovakirdan/sprog/internal/registry"
)

// Speed is the sprite speed in pixels per frame.
const Speed = 2.0

// bodyColor is the colour the sprite is drawn with in sprite.
const bodyColor = core.ColorYellow

var sprite = core.MustBitmap(
	"..dddd..",
	".dddddd.",
	"dd0dd0dd",
	"dddddddd",
	"dd0dd0dd",
	"ddd00ddd",
	".dddddd.",
	"..dddd..",
)

// Demo implements the mover demo.
type Demo struct {
	engine.Base
	pos       core.Vec2
	color     core.Color
	secondary bool // Whether a secondary button was held last frame
	status    core.TextHandle
}

// New creates a new mover demo instance.
func New() *Demo {
	return &Demo{}
}

// ID returns the unique identifier for this demo.
func (d *Demo) ID() string {
	return "mover"
}

// Title returns the display name for this demo.
func (d *Demo) Title() string {
	return "Mover"
}

// Description returns a one-line summary.
func (d *Demo) Description() string {
	return "Move a sprite with the primary cluster, recolour it with the secondary"
}

// Init centres the sprite and adds the title text.
func (d *Demo) Init(rt *engine.Runtime) {
	fb := rt.Display()
	d.pos = core.Vec2{
		X: float64(fb.Width()-sprite.Width()) / 2,
		Y: float64(fb.Height()-sprite.Height()) / 2,
	}
	d.color = bodyColor
	d.secondary = false
	d.status = 0
	fb.AddText(2, 2, "sprog")
}

// Update moves and recolours the sprite.
// A layout without a primary cluster stops the run with an error.
func (d *Demo) Update(rt *engine.Runtime) {
	in := rt.Input()

	dir, err := in.Direction(core.ClusterPrimary)
	if err != nil {
		rt.Fail(err)
		return
	}
	fb := rt.Display()
	d.pos = d.pos.Add(dir.Scale(Speed))
	d.pos.X = core.ClampF(d.pos.X, 0, float64(fb.Width()-sprite.Width()))
	d.pos.Y = core.ClampF(d.pos.Y, 0, float64(fb.Height()-sprite.Height()))

	sec, err := in.Direction(core.ClusterSecondary)
	if errors.Is(err, core.ErrInvalidCluster) {
		return
	}
	held := !sec.IsZero()
	if held && !d.secondary {
		step := 1
		if sec.X < 0 || sec.Y < 0 {
			step = core.PaletteSize - 1
		}
		d.color = core.Color((int(d.color) + step) % core.PaletteSize)
	}
	d.secondary = held
}

// Draw paints the sprite and refreshes the status line.
func (d *Demo) Draw(rt *engine.Runtime) {
	fb := rt.Display()
	fb.Clear(core.ColorNavy)
	fb.Blit(int(d.pos.X), int(d.pos.Y), sprite.Recolor(bodyColor, d.color))

	// Under the per-frame overlay policy the old entry is already gone.
	if d.status != 0 {
		if err := fb.RemoveText(d.status); err != nil && !errors.Is(err, core.ErrTextNotFound) {
			rt.Fail(err)
			return
		}
	}
	d.status = fb.AddText(2, fb.Height()-10, fmt.Sprintf("f%d hold %d", rt.Frame(), longestHold(rt.Input())))
}

// longestHold returns the largest hold counter among the held buttons.
func longestHold(in *core.InputState) uint32 {
	var longest uint32
	in.HeldButtons().Each(func(b core.Button) {
		if n, err := in.HoldDuration(b); err == nil && n > longest {
			longest = n
		}
	})
	return longest
}

func init() {
	registry.Register("mover", func() registry.Demo {
		return New()
	})
}
