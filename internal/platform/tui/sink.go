// Package tui is the terminal simulator: a display sink that draws the
// framebuffer with half-block glyphs, a key-latch input source, and the
// Bubble Tea menus around them.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/platform/raster"
)

// SinkOptions configures a terminal sink.
type SinkOptions struct {
	Title    string
	Palette   *core.Palette // Nil selects core.Cheerful24
	TextColor *core.Color   // Nil selects core.ColorWhite
	Controls Controls
	Latch    *KeyLatch // Receives every key that is not a control

	// ProgramOptions are appended after the defaults (alt screen).
	ProgramOptions []tea.ProgramOption
}

// Sink displays frames in the terminal. Refresh renders on the caller's
// goroutine and hands the finished string to the Bubble Tea program.
type Sink struct {
	program  *tea.Program
	renderer *Renderer
	frame    uint64
	done     chan struct{}

	mu  sync.Mutex
	err error
}

// NewSink creates a terminal sink. Call Start before the engine runs.
func NewSink(opts SinkOptions) *Sink {
	p := opts.Palette
	if p == nil {
		cp := core.Cheerful24
		p = &cp
	}

	model := newScreenModel(opts.Title, opts.Controls, opts.Latch)
	progOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts.ProgramOptions...)

	renderer := NewRenderer(p)
	if opts.TextColor != nil {
		renderer.SetTextColor(*opts.TextColor)
	}

	return &Sink{
		program:  tea.NewProgram(model, progOpts...),
		renderer: renderer,
		done:     make(chan struct{}),
	}
}

// Start runs the Bubble Tea program in the background.
func (s *Sink) Start() {
	go func() {
		defer close(s.done)
		_, err := s.program.Run()
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
	}()
}

// Refresh renders fb and sends it to the UI. Once the UI has exited,
// frames are dropped; Refresh then returns the program's error, if any.
func (s *Sink) Refresh(fb *core.Framebuffer) error {
	select {
	case <-s.done:
		return s.Err()
	default:
	}

	view := s.renderer.Render(raster.FromFramebuffer(fb))
	s.frame++
	s.program.Send(FrameMsg{View: view, Frame: s.frame})
	return nil
}

// Done is closed when the UI exits, whether the user quit or it failed.
func (s *Sink) Done() <-chan struct{} {
	return s.done
}

// Err returns the error the program exited with.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Stop asks the UI to exit and waits for it to restore the terminal.
func (s *Sink) Stop() error {
	s.program.Quit()
	<-s.done
	return s.Err()
}
