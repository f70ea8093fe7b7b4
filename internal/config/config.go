// Package config provides YAML-based configuration loading for sprog:
// display geometry and pacing, the button layout and the per-platform
// bindings that feed it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/sprog/internal/core"
)

// Config is the root of the settings file.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Input    InputConfig    `yaml:"input"`
	Terminal TerminalConfig `yaml:"terminal"`
	Fbdev    FbdevConfig    `yaml:"fbdev"`
	Record   RecordConfig   `yaml:"record"`
	Log      LogConfig      `yaml:"log"`

	// Source is where the config was loaded from: a path or "embedded".
	Source string `yaml:"-"`
}

// DisplayConfig defines the framebuffer and frame pacing.
type DisplayConfig struct {
	Width     int      `yaml:"width"`
	Height    int      `yaml:"height"`
	FPS       int      `yaml:"fps"`
	ColorMode string   `yaml:"color_mode"`
	Overlay   string   `yaml:"overlay"`
	Palette   []string `yaml:"palette"` // Empty selects core.Cheerful24
}

// InputConfig defines the button layout.
type InputConfig struct {
	Clusters    []ClusterConfig `yaml:"clusters"`
	Buttons     []string        `yaml:"buttons"`      // Buttons outside any cluster
	DebugButton string          `yaml:"debug_button"` // Held to force garbage collection
}

// ClusterConfig names the four direction buttons of one cluster.
// Any direction may be left empty.
type ClusterConfig struct {
	Name  string `yaml:"name"`
	Up    string `yaml:"up"`
	Left  string `yaml:"left"`
	Down  string `yaml:"down"`
	Right string `yaml:"right"`
}

// TerminalConfig configures the terminal simulator.
type TerminalConfig struct {
	KeyLatchMS int                 `yaml:"key_latch_ms"`
	TextColor  int                 `yaml:"text_color"` // Palette index for overlay text
	Keys       map[string][]string `yaml:"keys"`       // Button -> key names
}

// FbdevConfig configures the Linux framebuffer device and evdev inputs.
type FbdevConfig struct {
	Device string           `yaml:"device"`
	Inputs []string         `yaml:"inputs"` // Empty scans /dev/input/event*
	Codes  map[string][]int `yaml:"codes"`  // Button -> KEY_* codes
}

// RecordConfig configures the recording sink.
type RecordConfig struct {
	Level string `yaml:"level"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Used while the terminal owns stderr
}

// Runtime converts the display and input sections to engine settings.
func (c Config) Runtime() (core.RuntimeConfig, error) {
	mode, err := core.ParseColorMode(c.Display.ColorMode)
	if err != nil {
		return core.RuntimeConfig{}, fmt.Errorf("config: display.color_mode: %w", err)
	}
	policy, err := core.ParseOverlayPolicy(c.Display.Overlay)
	if err != nil {
		return core.RuntimeConfig{}, fmt.Errorf("config: display.overlay: %w", err)
	}
	rc := core.RuntimeConfig{
		Width:         c.Display.Width,
		Height:        c.Display.Height,
		FrameRate:     c.Display.FPS,
		ColorMode:     mode,
		OverlayPolicy: policy,
		DebugButton:   core.Button(c.Input.DebugButton),
	}
	if err := rc.Validate(); err != nil {
		return core.RuntimeConfig{}, fmt.Errorf("config: %w", err)
	}
	return rc, nil
}

// Layout converts the input section to a button layout.
func (c Config) Layout() core.Layout {
	var layout core.Layout
	for _, cl := range c.Input.Clusters {
		cluster := core.ClusterLayout{Name: core.Cluster(cl.Name)}
		dirs := []struct {
			name   string
			offset core.Offset
		}{
			{cl.Up, core.OffsetUp},
			{cl.Left, core.OffsetLeft},
			{cl.Down, core.OffsetDown},
			{cl.Right, core.OffsetRight},
		}
		for _, d := range dirs {
			if d.name == "" {
				continue
			}
			cluster.Buttons = append(cluster.Buttons, core.DirButton{Name: core.Button(d.name), Offset: d.offset})
		}
		layout.Clusters = append(layout.Clusters, cluster)
	}
	for _, b := range c.Input.Buttons {
		layout.Buttons = append(layout.Buttons, core.Button(b))
	}
	return layout
}

// Palette returns the configured palette, or core.Cheerful24 when none is set.
func (c Config) Palette() (core.Palette, error) {
	if len(c.Display.Palette) == 0 {
		return core.Cheerful24, nil
	}
	if len(c.Display.Palette) != core.PaletteSize {
		return core.Palette{}, fmt.Errorf("config: display.palette has %d entries, want %d", len(c.Display.Palette), core.PaletteSize)
	}
	var p core.Palette
	for i, s := range c.Display.Palette {
		rgb, err := parseHex(s)
		if err != nil {
			return core.Palette{}, fmt.Errorf("config: display.palette[%d]: %w", i, err)
		}
		p[i] = rgb
	}
	return p, nil
}

func parseHex(s string) (core.RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return core.RGB{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return core.RGB{}, fmt.Errorf("invalid colour %q", s)
	}
	return core.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// KeyLatch returns how long a terminal key press keeps its button held.
func (c Config) KeyLatch() time.Duration {
	if c.Terminal.KeyLatchMS <= 0 {
		return 150 * time.Millisecond
	}
	return time.Duration(c.Terminal.KeyLatchMS) * time.Millisecond
}

// KeyBindings returns the terminal key names per button.
func (c Config) KeyBindings() map[core.Button][]string {
	out := make(map[core.Button][]string, len(c.Terminal.Keys))
	for b, keys := range c.Terminal.Keys {
		out[core.Button(b)] = append([]string(nil), keys...)
	}
	return out
}

// EvdevCodes returns a KEY_* code to button map for the device input reader.
func (c Config) EvdevCodes() map[uint16]core.Button {
	out := make(map[uint16]core.Button)
	for b, codes := range c.Fbdev.Codes {
		for _, code := range codes {
			out[uint16(code)] = core.Button(b)
		}
	}
	return out
}

// TextColor returns the terminal overlay text colour, checked against the
// display colour mode.
func (c Config) TextColor() (core.Color, error) {
	mode, err := core.ParseColorMode(c.Display.ColorMode)
	if err != nil {
		return 0, fmt.Errorf("config: display.color_mode: %w", err)
	}
	tc := c.Terminal.TextColor
	if tc < 0 || tc > 255 {
		return 0, fmt.Errorf("config: terminal.text_color: %w: %d", core.ErrColorOutOfRange, tc)
	}
	if err := core.ValidateColor(core.Color(tc), mode); err != nil {
		return 0, fmt.Errorf("config: terminal.text_color: %w", err)
	}
	return core.Color(tc), nil
}

// Validate checks everything the schema cannot: that the layout builds,
// that the debug button exists and that every binding names a known
// button.
func (c Config) Validate() error {
	if _, err := c.Runtime(); err != nil {
		return err
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if _, err := c.TextColor(); err != nil {
		return err
	}
	state, err := core.NewInputState(c.Layout())
	if err != nil {
		return fmt.Errorf("config: input: %w", err)
	}
	known := make(map[core.Button]bool)
	for _, b := range state.Buttons() {
		known[b] = true
	}
	if d := c.Input.DebugButton; d != "" && !known[core.Button(d)] {
		return fmt.Errorf("config: input.debug_button: %w: %q", core.ErrUnknownButton, d)
	}
	for b := range c.Terminal.Keys {
		if !known[core.Button(b)] {
			return fmt.Errorf("config: terminal.keys: %w: %q", core.ErrUnknownButton, b)
		}
	}
	seen := make(map[int]string)
	for b, codes := range c.Fbdev.Codes {
		if !known[core.Button(b)] {
			return fmt.Errorf("config: fbdev.codes: %w: %q", core.ErrUnknownButton, b)
		}
		for _, code := range codes {
			if other, dup := seen[code]; dup && other != b {
				return fmt.Errorf("config: fbdev.codes: code %d bound to both %q and %q", code, other, b)
			}
			seen[code] = b
		}
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
