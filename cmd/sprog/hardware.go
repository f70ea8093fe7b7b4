package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
	"github.com/vovakirdan/sprog/internal/platform/fbdev"
	"github.com/vovakirdan/sprog/internal/platform/raster"
	"github.com/vovakirdan/sprog/internal/platform/record"
	"github.com/vovakirdan/sprog/internal/platform/tui"
)

// Sink names accepted by --sink.
const (
	sinkTerminal = "terminal"
	sinkFbdev    = "fbdev"
	sinkRecord   = "record"
)

// hardware bundles the platform collaborators for one run.
type hardware struct {
	ctx   context.Context // Cancelled when the platform wants the run to end
	sink  engine.DisplaySink
	input engine.InputSource
	clock engine.Clock // nil selects the wall clock
	close func()
}

func openHardware(ctx context.Context, st settings, opts runOptions, logger *log.Logger) (*hardware, error) {
	switch opts.sink {
	case sinkTerminal:
		return openTerminal(ctx, st, opts, logger)
	case sinkFbdev:
		return openFbdev(ctx, st, logger)
	case sinkRecord:
		return openRecord(ctx, st, opts, logger)
	default:
		return nil, fmt.Errorf("unknown sink %q (terminal, fbdev or record)", opts.sink)
	}
}

func openTerminal(ctx context.Context, st settings, opts runOptions, logger *log.Logger) (*hardware, error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("the terminal sink needs a TTY; use --sink record")
	}
	// Two pixel rows per line, plus the status and help lines
	if w, h, err := term.GetSize(fd); err == nil {
		if w < st.runtime.Width || h < (st.runtime.Height+1)/2+2 {
			logger.Warn("terminal smaller than the display, frames will be cropped",
				"terminal", fmt.Sprintf("%dx%d", w, h),
				"needed", fmt.Sprintf("%dx%d", st.runtime.Width, (st.runtime.Height+1)/2+2),
			)
		}
	}

	latch := tui.NewKeyLatch(tui.BindButtons(st.cfg.KeyBindings()), st.cfg.KeyLatch())
	palette := st.palette
	sink := tui.NewSink(tui.SinkOptions{
		Title:     opts.demoID,
		Palette:   &palette,
		TextColor: &st.text,
		Controls:  tui.DefaultControls(),
		Latch:     latch,
	})
	sink.Start()

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case <-sink.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	return &hardware{
		ctx:   ctx,
		sink:  sink,
		input: latch,
		close: func() {
			cancel()
			if err := sink.Stop(); err != nil {
				logger.Error("terminal", "error", err)
			}
		},
	}, nil
}

func openFbdev(ctx context.Context, st settings, logger *log.Logger) (*hardware, error) {
	palette := st.palette
	sink, err := fbdev.Open(st.cfg.Fbdev.Device, &palette)
	if err != nil {
		return nil, err
	}
	logger.Info("framebuffer open", "device", st.cfg.Fbdev.Device, "bounds", sink.Bounds())

	input, err := fbdev.OpenEvdev(ctx, st.cfg.Fbdev.Inputs, st.cfg.EvdevCodes(), logger)
	if err != nil {
		sink.Close()
		return nil, err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	return &hardware{
		ctx:   ctx,
		sink:  sink,
		input: input,
		close: func() {
			stop()
			input.Close()
			sink.Close()
		},
	}, nil
}

func openRecord(ctx context.Context, st settings, opts runOptions, logger *log.Logger) (*hardware, error) {
	if opts.out == "" {
		return nil, errors.New("the record sink needs --out")
	}
	if opts.frames == 0 && !opts.realtime {
		return nil, errors.New("the record sink needs --frames unless --realtime is set")
	}
	level, err := record.ParseLevel(st.cfg.Record.Level)
	if err != nil {
		return nil, err
	}
	sink, err := record.Create(opts.out, level)
	if err != nil {
		return nil, err
	}

	var clock engine.Clock
	if !opts.realtime {
		// Headless runs do not wait for the wall clock
		clock = engine.NewVirtualClock(time.Now())
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	return &hardware{
		ctx:   ctx,
		sink:  sink,
		input: engine.NullInput{},
		clock: clock,
		close: func() {
			stop()
			frames := sink.Frames()
			if err := sink.Close(); err != nil {
				logger.Error("recording", "error", err)
				return
			}
			logger.Info("recording written", "path", opts.out, "frames", frames)
		},
	}, nil
}

// snapshotSink keeps a copy of the last frame for --png.
type snapshotSink struct {
	next engine.DisplaySink
	last raster.Frame
}

func (s *snapshotSink) Refresh(fb *core.Framebuffer) error {
	f := raster.FromFramebuffer(fb)
	s.last.Width, s.last.Height = f.Width, f.Height
	s.last.Pixels = append(s.last.Pixels[:0], f.Pixels...)
	s.last.Texts = f.Texts
	return s.next.Refresh(fb)
}
