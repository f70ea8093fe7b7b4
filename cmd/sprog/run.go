package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
	"github.com/vovakirdan/sprog/internal/platform/record"
	"github.com/vovakirdan/sprog/internal/registry"
	"github.com/vovakirdan/sprog/internal/storage"
)

// runOptions are the per-run flags.
type runOptions struct {
	demoID   string
	sink     string
	out      string
	frames   uint64
	overlay  string
	png      string
	pngScale int
	realtime bool
}

var runFlags runOptions

var runCmd = &cobra.Command{
	Use:   "run <demo>",
	Short: "Run a demo",
	Long: `Run the specified demo until it stops or you quit.

Sinks:
  terminal - Half-block rendering in this terminal (default)
  fbdev    - Linux framebuffer with evdev keys
  record   - Headless, compressed recording to --out

Terminal controls:
  w/a/s/d, arrows - Primary direction buttons
  i/j/k/l         - Secondary direction buttons
  ?               - Toggle key help
  q/Ctrl+C        - Quit

Examples:
  sprog run plasma
  sprog run mover --overlay per-frame
  sprog run tunnel --sink record --out tunnel.sprg --frames 300
  sprog run diagonal --frames 60 --png last.png`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.sink, "sink", sinkTerminal, "Display: terminal, fbdev or record")
	runCmd.Flags().StringVar(&runFlags.out, "out", "", "Recording file for --sink record")
	runCmd.Flags().Uint64Var(&runFlags.frames, "frames", 0, "Stop after this many frames (0 = run until quit)")
	runCmd.Flags().StringVar(&runFlags.overlay, "overlay", "", "Overlay policy: persist or per-frame (empty = from config)")
	runCmd.Flags().StringVar(&runFlags.png, "png", "", "Write the last frame to this PNG file")
	runCmd.Flags().IntVar(&runFlags.pngScale, "png-scale", 4, "Integer scale for --png")
	runCmd.Flags().BoolVar(&runFlags.realtime, "realtime", false, "Pace recordings with the wall clock")
}

func runRun(_ *cobra.Command, args []string) {
	opts := runFlags
	opts.demoID = args[0]

	// Check if demo exists
	if !registry.Exists(opts.demoID) {
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", opts.demoID)
		fmt.Fprintln(os.Stderr, "Run 'sprog list' to see available demos.")
		os.Exit(1)
	}

	st, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := runLogger(st, opts.sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open session storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session database", "error", err)
		// Continue without storage - the demo still runs
		store = nil
	}

	stats, runErr := runDemo(context.Background(), st, opts, store, logger)

	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running demo: %v\n", runErr)
		os.Exit(1)
	}
	fmt.Printf("%s: %d frames in %s (%.1f fps), %d overruns\n",
		opts.demoID, stats.Frames, stats.Wall.Round(time.Millisecond), stats.FPS(), stats.Overruns)
}

// runLogger logs to stderr, or to the log file while the terminal sink
// owns the screen.
func runLogger(st settings, sink string) (*log.Logger, func(), error) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if sink == sinkTerminal {
		f, err := openLogFile(st.cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	logger, err := newLogger(w, st.cfg, "sprog")
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}

// runDemo runs one demo to completion and logs the session to store when
// it is not nil.
func runDemo(ctx context.Context, st settings, opts runOptions, store *storage.Store, logger *log.Logger) (engine.Stats, error) {
	demo, err := registry.Create(opts.demoID)
	if err != nil {
		return engine.Stats{}, err
	}

	rc := st.runtime
	if opts.overlay != "" {
		if rc.OverlayPolicy, err = core.ParseOverlayPolicy(opts.overlay); err != nil {
			return engine.Stats{}, err
		}
	}

	var game engine.Lifecycle = demo
	if opts.frames > 0 {
		game = engine.LimitFrames(demo, opts.frames)
	}

	hw, err := openHardware(ctx, st, opts, logger)
	if err != nil {
		return engine.Stats{}, err
	}

	var sink engine.DisplaySink = hw.sink
	var snap *snapshotSink
	if opts.png != "" {
		snap = &snapshotSink{next: hw.sink}
		sink = snap
	}

	palette := st.palette
	eng, err := engine.New(game, engine.Config{
		Runtime: rc,
		Layout:  st.layout,
		Palette: &palette,
		Sink:    sink,
		Input:   hw.input,
		Memory:  engine.GoMemory{},
		Clock:   hw.clock,
		Logger:  logger.WithPrefix(opts.demoID),
	})
	if err != nil {
		hw.close()
		return engine.Stats{}, err
	}

	started := time.Now()
	runErr := eng.Run(hw.ctx)
	hw.close()
	stats := eng.Stats()

	if store != nil {
		sess := storage.Session{
			DemoID:    opts.demoID,
			Sink:      opts.sink,
			FrameRate: rc.FrameRate,
			Frames:    stats.Frames,
			Overruns:  stats.Overruns,
			AvgFrame:  stats.AvgFrame(),
			MaxFrame:  stats.MaxFrame,
			Wall:      stats.Wall,
			StartedAt: started,
		}
		if runErr != nil {
			sess.Error = runErr.Error()
		}
		if _, err := store.SaveSession(sess); err != nil {
			logger.Warn("could not save session", "error", err)
		}
	}

	if runErr != nil {
		return stats, runErr
	}

	if snap != nil && snap.last.Pixels != nil {
		if err := writePNGFile(opts.png, snap, &palette, opts.pngScale); err != nil {
			return stats, err
		}
		logger.Info("snapshot written", "path", opts.png)
	}
	return stats, nil
}

func writePNGFile(path string, snap *snapshotSink, p *core.Palette, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := record.WritePNG(f, snap.last, p, scale); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
