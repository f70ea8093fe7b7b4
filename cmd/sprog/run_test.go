package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sprog/internal/config"
	"github.com/vovakirdan/sprog/internal/platform/record"
	"github.com/vovakirdan/sprog/internal/storage"
)

func testSettings(t *testing.T) settings {
	t.Helper()
	st, err := newSettings(config.Default(), 0)
	if err != nil {
		t.Fatalf("newSettings: %v", err)
	}
	return st
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRunDemoRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "sessions.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	opts := runOptions{
		demoID:   "plasma",
		sink:     sinkRecord,
		out:      filepath.Join(dir, "plasma.sprg"),
		frames:   12,
		png:      filepath.Join(dir, "last.png"),
		pngScale: 2,
	}
	stats, err := runDemo(context.Background(), testSettings(t), opts, store, quietLogger())
	if err != nil {
		t.Fatalf("runDemo: %v", err)
	}
	if stats.Frames != 12 {
		t.Errorf("frames = %d, expected 12", stats.Frames)
	}

	rd, err := record.Open(opts.out)
	if err != nil {
		t.Fatalf("record.Open: %v", err)
	}
	defer rd.Close()
	if rd.Width() != 160 || rd.Height() != 128 {
		t.Errorf("recording is %dx%d, expected 160x128", rd.Width(), rd.Height())
	}

	if _, err := os.Stat(opts.png); err != nil {
		t.Errorf("snapshot missing: %v", err)
	}

	sessions, err := store.RecentSessions("plasma", 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("logged %d sessions, expected 1", len(sessions))
	}
	if s := sessions[0]; s.Sink != sinkRecord || s.Frames != 12 || s.Error != "" || s.FrameRate != 30 {
		t.Errorf("session = %+v", s)
	}
}

func TestRunDemoErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		opts runOptions
		want string
	}{
		{"unknown demo", runOptions{demoID: "nope", sink: sinkRecord}, "unknown demo"},
		{"unknown sink", runOptions{demoID: "wave", sink: "vga"}, "unknown sink"},
		{"record without out", runOptions{demoID: "wave", sink: sinkRecord, frames: 1}, "--out"},
		{"record without frames", runOptions{demoID: "wave", sink: sinkRecord, out: filepath.Join(dir, "x.sprg")}, "--frames"},
		{"bad overlay", runOptions{demoID: "wave", sink: sinkRecord, overlay: "sometimes"}, "overlay"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runDemo(context.Background(), testSettings(t), tc.opts, nil, quietLogger())
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, expected it to mention %q", err, tc.want)
			}
		})
	}
}

func TestReplayExport(t *testing.T) {
	dir := t.TempDir()
	st := testSettings(t)
	out := filepath.Join(dir, "mover.sprg")

	opts := runOptions{demoID: "mover", sink: sinkRecord, out: out, frames: 6}
	if _, err := runDemo(context.Background(), st, opts, nil, quietLogger()); err != nil {
		t.Fatalf("runDemo: %v", err)
	}

	pngDir := filepath.Join(dir, "frames")
	sum, err := replay(out, pngDir, 1, 2, st)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if sum.frames != 6 || sum.exported != 3 {
		t.Errorf("summary = %+v, expected 6 frames and 3 exported", sum)
	}
	if sum.withText != 6 {
		t.Errorf("frames with text = %d, expected every mover frame", sum.withText)
	}
	if _, err := os.Stat(filepath.Join(pngDir, "frame_00004.png")); err != nil {
		t.Errorf("frame 4 not exported: %v", err)
	}
}

func TestNewSettingsFPSOverride(t *testing.T) {
	st, err := newSettings(config.Default(), 60)
	if err != nil {
		t.Fatalf("newSettings: %v", err)
	}
	if st.runtime.FrameRate != 60 {
		t.Errorf("frame rate = %d, expected 60", st.runtime.FrameRate)
	}
}
