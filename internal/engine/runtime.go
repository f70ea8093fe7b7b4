package engine

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sprog/internal/core"
)

// Runtime is the game's view of a running engine. It is passed to every
// Lifecycle callback and must only be used from inside those callbacks.
type Runtime struct {
	fb      *core.Framebuffer
	input   *core.InputState
	cfg     core.RuntimeConfig
	palette *core.Palette
	logger  *log.Logger
	frame   uint64
	policy  core.OverlayPolicy
	stopped bool
	err     error
}

// Display returns the framebuffer drawn by the game.
func (r *Runtime) Display() *core.Framebuffer {
	return r.fb
}

// Input returns the button state polled at the start of the frame.
func (r *Runtime) Input() *core.InputState {
	return r.input
}

// Frame returns the index of the current frame, starting at 0.
// During Init it is 0.
func (r *Runtime) Frame() uint64 {
	return r.frame
}

// Stop asks the loop to exit. The current frame runs to completion
// (draw and refresh included) and no callbacks follow it.
func (r *Runtime) Stop() {
	r.stopped = true
}

// Fail stops the loop like Stop and makes Run return err.
// Only the first non-nil error is kept.
func (r *Runtime) Fail(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
	r.stopped = true
}

// Stopping reports whether Stop or Fail has been called.
func (r *Runtime) Stopping() bool {
	return r.stopped
}

// OverlayPolicy returns the active overlay clearing policy.
func (r *Runtime) OverlayPolicy() core.OverlayPolicy {
	return r.policy
}

// SetOverlayPolicy changes the overlay clearing policy from the next frame on.
func (r *Runtime) SetOverlayPolicy(p core.OverlayPolicy) {
	r.policy = p
}

// Palette returns the palette sinks use to display colour indices.
func (r *Runtime) Palette() *core.Palette {
	return r.palette
}

// Logger returns the engine logger.
func (r *Runtime) Logger() *log.Logger {
	return r.logger
}

// Config returns the settings the engine was started with.
func (r *Runtime) Config() core.RuntimeConfig {
	return r.cfg
}
