package engine

import (
	"sync"

	"github.com/vovakirdan/sprog/internal/core"
)

// DisplaySink pushes a finished frame to an output device.
// Refresh is called once per frame from the loop goroutine. An error is
// fatal: the engine stops and Run reports ErrHardwareUnavailable.
type DisplaySink interface {
	Refresh(fb *core.Framebuffer) error
}

// InputSource samples the current level of every physical button.
// Errors are fatal in the same way as DisplaySink errors.
type InputSource interface {
	Sample() (core.RawInput, error)
}

// SinkFunc adapts a function to DisplaySink.
type SinkFunc func(fb *core.Framebuffer) error

// Refresh calls f(fb).
func (f SinkFunc) Refresh(fb *core.Framebuffer) error {
	return f(fb)
}

// DiscardSink accepts every frame and shows nothing.
type DiscardSink struct{}

// Refresh does nothing.
func (DiscardSink) Refresh(*core.Framebuffer) error {
	return nil
}

// NullInput reports every button released.
type NullInput struct{}

// Sample returns an empty sample.
func (NullInput) Sample() (core.RawInput, error) {
	return core.RawInput{}, nil
}

// ScriptedInput replays a fixed sequence of samples, one per call.
// Once the script runs out every button reads released.
type ScriptedInput struct {
	mu     sync.Mutex
	frames []core.RawInput
	next   int
}

// NewScriptedInput returns a source that yields frames in order.
func NewScriptedInput(frames ...core.RawInput) *ScriptedInput {
	return &ScriptedInput{frames: frames}
}

// Sample returns the next scripted sample.
func (s *ScriptedInput) Sample() (core.RawInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.frames) {
		return core.RawInput{}, nil
	}
	raw := s.frames[s.next]
	s.next++
	return raw, nil
}

// Remaining returns the number of samples not yet consumed.
func (s *ScriptedInput) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames) - s.next
}
