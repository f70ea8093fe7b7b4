package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sprog/internal/platform/record"
)

var (
	flagReplayPNGDir string
	flagReplayScale  int
	flagReplayEvery  int
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Inspect or export a recording",
	Long: `Read a recording made with '--sink record', print a summary and
optionally export frames as PNG files.

Examples:
  sprog replay tunnel.sprg
  sprog replay tunnel.sprg --png-dir frames --scale 4
  sprog replay tunnel.sprg --png-dir frames --every 30`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayPNGDir, "png-dir", "", "Export frames as PNG into this directory")
	replayCmd.Flags().IntVar(&flagReplayScale, "scale", 4, "Integer scale for exported PNGs")
	replayCmd.Flags().IntVar(&flagReplayEvery, "every", 1, "Export every Nth frame")
}

func runReplay(_ *cobra.Command, args []string) {
	st, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sum, err := replay(args[0], flagReplayPNGDir, flagReplayScale, flagReplayEvery, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %dx%d, %d frames, %d with overlay text\n",
		args[0], sum.width, sum.height, sum.frames, sum.withText)
	if sum.exported > 0 {
		fmt.Printf("Exported %d frames to %s\n", sum.exported, flagReplayPNGDir)
	}
}

type replaySummary struct {
	width, height int
	frames        int
	withText      int
	exported      int
}

func replay(path, pngDir string, scale, every int, st settings) (replaySummary, error) {
	rd, err := record.Open(path)
	if err != nil {
		return replaySummary{}, err
	}
	defer rd.Close()

	if pngDir != "" {
		if err := os.MkdirAll(pngDir, 0o755); err != nil {
			return replaySummary{}, err
		}
	}
	if every < 1 {
		every = 1
	}

	sum := replaySummary{width: rd.Width(), height: rd.Height()}
	for {
		f, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return sum, nil
		}
		if err != nil {
			return sum, err
		}
		sum.frames++
		if len(f.Texts) > 0 {
			sum.withText++
		}

		if pngDir == "" || f.Index%uint64(every) != 0 {
			continue
		}
		name := filepath.Join(pngDir, fmt.Sprintf("frame_%05d.png", f.Index))
		if err := writeFramePNG(name, f, st, scale); err != nil {
			return sum, err
		}
		sum.exported++
	}
}

func writeFramePNG(path string, f record.Frame, st settings, scale int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	palette := st.palette
	if err := record.WritePNG(out, f.Frame, &palette, scale); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
