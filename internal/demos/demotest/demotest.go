// Package demotest runs demos headlessly for tests.
package demotest

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
)

// Frame is a copy of the framebuffer taken at refresh.
type Frame struct {
	Width  int
	Pixels []core.Color
	Texts  []core.TextEntry
}

// At returns the colour at (x, y).
func (f Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// Count returns how many pixels have colour c.
func (f Frame) Count(c core.Color) int {
	n := 0
	for _, p := range f.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

// Run drives game for frames frames on the default 160x128 display with a
// virtual clock and returns every refreshed frame. A nil input reads as
// nothing pressed.
func Run(t testing.TB, game engine.Lifecycle, frames uint64, input engine.InputSource) []Frame {
	t.Helper()
	return RunConfig(t, game, frames, input, core.DefaultConfig())
}

// RunConfig is Run with explicit runtime settings.
func RunConfig(t testing.TB, game engine.Lifecycle, frames uint64, input engine.InputSource, rc core.RuntimeConfig) []Frame {
	t.Helper()

	if input == nil {
		input = engine.NullInput{}
	}
	var out []Frame
	sink := engine.SinkFunc(func(fb *core.Framebuffer) error {
		out = append(out, Frame{
			Width:  fb.Width(),
			Pixels: append([]core.Color(nil), fb.Pixels()...),
			Texts:  fb.Texts(),
		})
		return nil
	})

	e, err := engine.New(engine.LimitFrames(game, frames), engine.Config{
		Runtime: rc,
		Layout:  core.DefaultLayout(),
		Sink:    sink,
		Input:   input,
		Clock:   engine.NewVirtualClock(time.Unix(0, 0)),
	})
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out
}
