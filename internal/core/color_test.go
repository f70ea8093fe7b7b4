package core

import "testing"

func TestPaletteHex(t *testing.T) {
	tests := []struct {
		c        Color
		expected string
	}{
		{ColorBlack, "#0f0f12"},
		{ColorWhite, "#f2fbff"},
		{ColorRed, "#e32239"},
		{ColorPurple, "#77388c"},
		{24, "#0f0f12"}, // wraps
	}

	for _, tc := range tests {
		if got := Cheerful24.Hex(tc.c); got != tc.expected {
			t.Errorf("Hex(%d) = %s, expected %s", tc.c, got, tc.expected)
		}
	}
}

func TestPaletteColors(t *testing.T) {
	p := Cheerful24.Colors()
	if len(p) != PaletteSize {
		t.Fatalf("len(Colors()) = %d, expected %d", len(p), PaletteSize)
	}
	r, g, b, a := p[ColorBlue].RGBA()
	if r>>8 != 0 || g>>8 != 161 || b>>8 != 219 || a>>8 != 0xff {
		t.Errorf("Colors()[blue] = (%d, %d, %d, %d)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestParseModes(t *testing.T) {
	tests := []struct {
		in      string
		mode    ColorMode
		wantErr bool
	}{
		{"", ColorModeFull, false},
		{"full", ColorModeFull, false},
		{"legacy16", ColorModeLegacy16, false},
		{"256", ColorModeFull, true},
	}

	for _, tc := range tests {
		m, err := ParseColorMode(tc.in)
		if (err != nil) != tc.wantErr || m != tc.mode {
			t.Errorf("ParseColorMode(%q) = (%v, %v)", tc.in, m, err)
		}
		if err == nil && tc.in != "" && m.String() != tc.in {
			t.Errorf("%v.String() = %q, expected %q", m, m.String(), tc.in)
		}
	}

	if p, err := ParseOverlayPolicy("per-frame"); err != nil || p != OverlayPerFrame {
		t.Errorf("ParseOverlayPolicy(per-frame) = (%v, %v)", p, err)
	}
	if _, err := ParseOverlayPolicy("sometimes"); err == nil {
		t.Error("ParseOverlayPolicy(sometimes) should fail")
	}
}

func TestRuntimeConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Width != 160 || cfg.Height != 128 || cfg.FrameRate != 30 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if cfg.FramePeriod() != 33333333 {
		t.Errorf("FramePeriod() = %v, expected 33.333333ms", cfg.FramePeriod())
	}

	cfg.FrameRate = 0
	if cfg.Validate() == nil {
		t.Error("zero frame rate should be rejected")
	}
	cfg.FrameRate, cfg.Width = 30, -1
	if cfg.Validate() == nil {
		t.Error("negative width should be rejected")
	}
}
