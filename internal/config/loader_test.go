package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/sprog/internal/core"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Source != "embedded" {
		t.Errorf("Source = %q, expected embedded", cfg.Source)
	}
	rc, err := cfg.Runtime()
	if err != nil {
		t.Fatalf("Runtime() error = %v", err)
	}
	if rc != core.DefaultConfig() {
		t.Errorf("Runtime() = %+v, expected %+v", rc, core.DefaultConfig())
	}
	if cfg.KeyLatch() != 150*time.Millisecond {
		t.Errorf("KeyLatch() = %v, expected 150ms", cfg.KeyLatch())
	}
	p, err := cfg.Palette()
	if err != nil || p != core.Cheerful24 {
		t.Errorf("Palette() = (%v, %v), expected Cheerful24", p, err)
	}
	if tc, err := cfg.TextColor(); err != nil || tc != core.ColorWhite {
		t.Errorf("TextColor() = (%d, %v), expected white", tc, err)
	}

	state, err := core.NewInputState(cfg.Layout())
	if err != nil {
		t.Fatalf("default layout: %v", err)
	}
	if len(state.Buttons()) != 8 {
		t.Errorf("default layout has %d buttons, expected 8", len(state.Buttons()))
	}
	if got := cfg.EvdevCodes()[17]; got != "w" {
		t.Errorf("EvdevCodes()[17] = %q, expected w", got)
	}
	if keys := cfg.KeyBindings()["w"]; len(keys) != 2 || keys[1] != "up" {
		t.Errorf("KeyBindings()[w] = %v", keys)
	}
}

func TestDefaultLayoutMatchesCore(t *testing.T) {
	got := Default().Layout()
	want := core.DefaultLayout()

	if len(got.Clusters) != len(want.Clusters) {
		t.Fatalf("clusters = %d, expected %d", len(got.Clusters), len(want.Clusters))
	}
	for i := range want.Clusters {
		if got.Clusters[i].Name != want.Clusters[i].Name {
			t.Errorf("cluster %d = %q, expected %q", i, got.Clusters[i].Name, want.Clusters[i].Name)
		}
		for j, b := range want.Clusters[i].Buttons {
			if got.Clusters[i].Buttons[j] != b {
				t.Errorf("cluster %q button %d = %+v, expected %+v", want.Clusters[i].Name, j, got.Clusters[i].Buttons[j], b)
			}
		}
	}
}

func TestParseOverlay(t *testing.T) {
	cfg, err := Parse([]byte("display:\n  fps: 60\n  overlay: per-frame\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	rc, err := cfg.Runtime()
	if err != nil {
		t.Fatalf("Runtime() error = %v", err)
	}
	if rc.FrameRate != 60 || rc.OverlayPolicy != core.OverlayPerFrame {
		t.Errorf("Runtime() = %+v", rc)
	}
	if rc.Width != 160 || rc.Height != 128 {
		t.Errorf("unset keys should keep defaults, got %dx%d", rc.Width, rc.Height)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if cfg.Display.FPS != 30 {
		t.Errorf("FPS = %d, expected 30", cfg.Display.FPS)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"unknown top-level key", "dispaly:\n  fps: 30\n", nil},
		{"unknown display key", "display:\n  framerate: 30\n", nil},
		{"zero fps", "display:\n  fps: 0\n", nil},
		{"bad color mode", "display:\n  color_mode: truecolor\n", nil},
		{"short palette", "display:\n  palette: ['#000000']\n", nil},
		{"bad palette entry", "display:\n  palette: [" + repeat("'#zzzzzz',", 23) + "'#000000']\n", nil},
		{"not yaml", "display: [\n", nil},
		{"debug button not in layout", "input:\n  debug_button: start\n", core.ErrUnknownButton},
		{"key for unknown button", "terminal:\n  keys:\n    x: [x]\n", core.ErrUnknownButton},
		{"code for unknown button", "fbdev:\n  codes:\n    x: [45]\n", core.ErrUnknownButton},
		{"duplicate button", "input:\n  clusters:\n    - {name: a, up: w}\n    - {name: b, up: w}\n", core.ErrInvalidLayout},
		{"text colour past the palette", "terminal:\n  text_color: 24\n", core.ErrColorOutOfRange},
		{"text colour past legacy16", "display:\n  color_mode: legacy16\nterminal:\n  text_color: 16\n", core.ErrColorOutOfRange},
		{"empty cluster", "input:\n  clusters:\n    - {name: a}\n", core.ErrInvalidLayout},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("Parse() error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}

func TestParseCustomLayoutDropsDefaultBindings(t *testing.T) {
	data := []byte(`
input:
  clusters:
    - name: pad
      up: up
      left: left
      down: down
      right: right
  buttons: [fire]
  debug_button: fire
terminal:
  keys:
    fire: [" ", z]
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cfg.Fbdev.Codes) != 0 {
		t.Errorf("default evdev codes should be dropped, got %v", cfg.Fbdev.Codes)
	}
	keys := cfg.KeyBindings()
	if len(keys) != 1 || len(keys["fire"]) != 2 {
		t.Errorf("KeyBindings() = %v", keys)
	}
	rc, err := cfg.Runtime()
	if err != nil {
		t.Fatalf("Runtime() error = %v", err)
	}
	if rc.DebugButton != "fire" {
		t.Errorf("DebugButton = %q, expected fire", rc.DebugButton)
	}
}

func TestParseDebugButtonKeepsBindings(t *testing.T) {
	cfg, err := Parse([]byte("input:\n  debug_button: k\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cfg.KeyBindings()) != 8 || len(cfg.EvdevCodes()) == 0 {
		t.Error("setting only the debug button should keep the default bindings")
	}
}

func TestParsePartialCluster(t *testing.T) {
	cfg, err := Parse([]byte("input:\n  clusters:\n    - {name: lr, left: a, right: d}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	layout := cfg.Layout()
	if len(layout.Clusters) != 1 || len(layout.Clusters[0].Buttons) != 2 {
		t.Errorf("Layout() = %+v", layout)
	}
}

func TestParsePalette(t *testing.T) {
	entries := ""
	for i := 0; i < core.PaletteSize; i++ {
		entries += "'#102030',"
	}
	cfg, err := Parse([]byte("display:\n  palette: [" + entries[:len(entries)-1] + "]\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette() error = %v", err)
	}
	if p[5] != (core.RGB{R: 0x10, G: 0x20, B: 0x30}) {
		t.Errorf("Palette()[5] = %+v", p[5])
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("display:\n  width: 64\n  height: 32\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, expected %q", cfg.Source, path)
	}
	if cfg.Display.Width != 64 || cfg.Display.Height != 32 {
		t.Errorf("size = %dx%d, expected 64x32", cfg.Display.Width, cfg.Display.Height)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of a missing explicit path should fail")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "embedded" {
		t.Errorf("Source = %q, expected embedded", cfg.Source)
	}

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "sprog.yaml"), []byte("display:\n  fps: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Display.FPS != 20 {
		t.Errorf("local config not used: FPS = %d", cfg.Display.FPS)
	}

	userDir := filepath.Join(home, ".sprog")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("display:\n  fps: 25\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Display.FPS != 25 {
		t.Errorf("user config should win over local: FPS = %d", cfg.Display.FPS)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal(Default())) error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Display, Default().Display) {
		t.Errorf("display section changed: %+v", cfg.Display)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/pi")

	tests := []struct{ in, want string }{
		{"~/.sprog/sessions.db", "/home/pi/.sprog/sessions.db"},
		{"~", "/home/pi"},
		{"/tmp/x.db", "/tmp/x.db"},
		{"~other/x", "~other/x"},
	}
	for _, tc := range tests {
		if got := ExpandHome(tc.in); got != tc.want {
			t.Errorf("ExpandHome(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
