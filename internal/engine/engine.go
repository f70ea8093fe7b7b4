// Package engine runs a Lifecycle at a fixed frame rate. Each frame it
// polls input, calls Update and Draw, refreshes the display sink and then
// sleeps until the frame's deadline.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sprog/internal/core"
)

// Engine errors.
var (
	ErrHardwareUnavailable = errors.New("engine: hardware unavailable")
	ErrAlreadyRun          = errors.New("engine: already run")
)

// State is the engine lifecycle state.
type State int32

const (
	StateUninitialized State = iota
	StateRunning
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config holds the collaborators and settings for one engine.
type Config struct {
	Runtime core.RuntimeConfig
	Layout  core.Layout
	Palette *core.Palette // nil selects core.Cheerful24
	Sink    DisplaySink
	Input   InputSource
	Memory  MemoryManager // nil disables the collection hook
	Clock   Clock         // nil selects WallClock
	Logger  *log.Logger   // nil discards log output
}

// Engine owns the framebuffer, the input state and the frame clock.
type Engine struct {
	game   Lifecycle
	sink   DisplaySink
	source InputSource
	memory MemoryManager
	clock  Clock
	logger *log.Logger
	period time.Duration
	rt     *Runtime

	state atomic.Int32

	mu    sync.Mutex
	stats Stats
}

// New validates cfg and builds an engine for game.
func New(game Lifecycle, cfg Config) (*Engine, error) {
	if game == nil {
		return nil, errors.New("engine: nil lifecycle")
	}
	if cfg.Sink == nil {
		return nil, errors.New("engine: nil display sink")
	}
	if cfg.Input == nil {
		return nil, errors.New("engine: nil input source")
	}
	if err := cfg.Runtime.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	input, err := core.NewInputState(cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if cfg.Runtime.DebugButton != "" {
		if _, err := input.Held(cfg.Runtime.DebugButton); err != nil {
			return nil, fmt.Errorf("engine: debug button: %w", err)
		}
	}

	if cfg.Clock == nil {
		cfg.Clock = WallClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Palette == nil {
		p := core.Cheerful24
		cfg.Palette = &p
	}

	e := &Engine{
		game:   game,
		sink:   cfg.Sink,
		source: cfg.Input,
		memory: cfg.Memory,
		clock:  cfg.Clock,
		logger: cfg.Logger,
		period: cfg.Runtime.FramePeriod(),
		rt: &Runtime{
			fb:      core.NewFramebuffer(cfg.Runtime.Width, cfg.Runtime.Height, cfg.Runtime.ColorMode),
			input:   input,
			cfg:     cfg.Runtime,
			palette: cfg.Palette,
			logger:  cfg.Logger,
			policy:  cfg.Runtime.OverlayPolicy,
		},
	}
	return e, nil
}

// State returns the current lifecycle state. Safe for concurrent use.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Stats returns a snapshot of the run's timing. Safe for concurrent use.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Frame returns the number of completed frames.
func (e *Engine) Frame() uint64 {
	return e.Stats().Frames
}

// Run calls Init and then loops until the game stops, the context is
// cancelled or a collaborator fails. It returns nil on a normal stop or
// cancellation, the error passed to Runtime.Fail, or an error wrapping
// ErrHardwareUnavailable. An engine runs at most once.
func (e *Engine) Run(ctx context.Context) error {
	if !e.state.CompareAndSwap(int32(StateUninitialized), int32(StateRunning)) {
		return ErrAlreadyRun
	}
	defer e.state.Store(int32(StateStopped))

	rt := e.rt
	e.logger.Info("engine started",
		"width", rt.cfg.Width,
		"height", rt.cfg.Height,
		"fps", rt.cfg.FrameRate,
		"overlay", rt.policy,
		"colors", rt.cfg.ColorMode,
	)

	e.game.Init(rt)

	runStart := e.clock.Now()
	err := e.loop(ctx)

	e.mu.Lock()
	e.stats.Wall = e.clock.Now().Sub(runStart)
	stats := e.stats
	e.mu.Unlock()

	if err != nil {
		e.logger.Error("engine stopped", "frames", stats.Frames, "error", err)
		return err
	}
	e.logger.Info("engine stopped",
		"frames", stats.Frames,
		"overruns", stats.Overruns,
		"avg_frame", stats.AvgFrame(),
		"max_frame", stats.MaxFrame,
	)
	return rt.err
}

func (e *Engine) loop(ctx context.Context) error {
	rt := e.rt
	for !rt.stopped && ctx.Err() == nil {
		start := e.clock.Now()

		if rt.policy == core.OverlayPerFrame {
			rt.fb.ClearText()
		}

		raw, err := e.source.Sample()
		if err != nil {
			return fmt.Errorf("%w: input: %w", ErrHardwareUnavailable, err)
		}
		rt.input.Poll(raw)

		e.game.Update(rt)
		e.game.Draw(rt)

		if err := e.sink.Refresh(rt.fb); err != nil {
			return fmt.Errorf("%w: refresh: %w", ErrHardwareUnavailable, err)
		}

		rt.frame++
		e.collect()

		elapsed := e.clock.Now().Sub(start)
		e.mu.Lock()
		e.stats.record(elapsed, e.period)
		e.mu.Unlock()

		if elapsed > e.period {
			e.logger.Debug("frame overrun", "frame", rt.frame-1, "elapsed", elapsed, "period", e.period)
		}
		if rt.stopped {
			break
		}
		// The deadline is fixed to this frame's start. An overrun frame
		// does not sleep and is never made up on later frames.
		if wait := e.period - elapsed; wait > 0 {
			e.clock.Sleep(ctx, wait)
		}
	}
	return nil
}

func (e *Engine) collect() {
	if e.memory == nil || e.rt.cfg.DebugButton == "" {
		return
	}
	if held, _ := e.rt.input.Held(e.rt.cfg.DebugButton); held {
		e.memory.Collect()
	}
}
