package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sprog/internal/config"
	"github.com/vovakirdan/sprog/internal/core"
)

// settings is the loaded configuration with command-line overrides applied.
type settings struct {
	cfg     config.Config
	runtime core.RuntimeConfig
	layout  core.Layout
	palette core.Palette
	text    core.Color // Terminal overlay text colour
}

func loadSettings() (settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return settings{}, err
	}
	return newSettings(cfg, flagFPS)
}

func newSettings(cfg config.Config, fps int) (settings, error) {
	rc, err := cfg.Runtime()
	if err != nil {
		return settings{}, err
	}
	if fps > 0 {
		rc.FrameRate = fps
	}
	p, err := cfg.Palette()
	if err != nil {
		return settings{}, err
	}
	text, err := cfg.TextColor()
	if err != nil {
		return settings{}, err
	}
	return settings{
		cfg:     cfg,
		runtime: rc,
		layout:  cfg.Layout(),
		palette: p,
		text:    text,
	}, nil
}

// newLogger creates a logger at the --log-level, falling back to the
// configured level.
func newLogger(w io.Writer, cfg config.Config, prefix string) (*log.Logger, error) {
	name := flagLogLevel
	if name == "" {
		name = cfg.Log.Level
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens the configured log file for appending. The terminal
// sink owns the screen, so terminal runs log there instead of to stderr.
func openLogFile(cfg config.Config) (*os.File, error) {
	path := config.ExpandHome(cfg.Log.File)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
