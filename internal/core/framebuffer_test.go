package core

import (
	"errors"
	"testing"
)

func TestNewFramebuffer(t *testing.T) {
	f := NewFramebuffer(160, 128, ColorModeFull)

	if f.Width() != 160 || f.Height() != 128 {
		t.Errorf("size = %dx%d, expected 160x128", f.Width(), f.Height())
	}
	if len(f.Pixels()) != 160*128 {
		t.Errorf("len(Pixels()) = %d, expected %d", len(f.Pixels()), 160*128)
	}
	if f.TextCount() != 0 {
		t.Errorf("new framebuffer has %d overlay entries", f.TextCount())
	}
}

func TestNewFramebufferPanicsOnBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewFramebuffer(0, 10) should panic")
		}
	}()
	NewFramebuffer(0, 10, ColorModeFull)
}

func TestSetPixelClipping(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		writes bool
	}{
		{"origin", 0, 0, true},
		{"last cell", 159, 127, true},
		{"width,height", 160, 128, false},
		{"x at width", 160, 0, false},
		{"y at height", 0, 128, false},
		{"negative x", -1, 0, false},
		{"negative y", 0, -1, false},
		{"small negative floors to -1", -0.25, 5, false},
		{"fraction floors inside", 159.9, 127.9, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFramebuffer(160, 128, ColorModeFull)
			f.SetPixel(tc.x, tc.y, ColorRed)

			count := 0
			for _, c := range f.Pixels() {
				if c == ColorRed {
					count++
				}
			}
			if tc.writes && count != 1 {
				t.Errorf("SetPixel(%v, %v) wrote %d cells, expected 1", tc.x, tc.y, count)
			}
			if !tc.writes && count != 0 {
				t.Errorf("SetPixel(%v, %v) wrote %d cells, expected none", tc.x, tc.y, count)
			}
		})
	}
}

func TestSetPixelFloors(t *testing.T) {
	f := NewFramebuffer(10, 10, ColorModeFull)
	f.SetPixel(3.7, 4.2, ColorOrange)

	if f.At(3, 4) != ColorOrange {
		t.Errorf("At(3, 4) = %d, expected %d", f.At(3, 4), ColorOrange)
	}
}

func TestClearFillsEveryCell(t *testing.T) {
	f := NewFramebuffer(16, 8, ColorModeFull)
	f.Set(3, 3, ColorRed)
	f.Clear(ColorPurple)

	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			if f.At(x, y) != ColorPurple {
				t.Fatalf("At(%d, %d) = %d after Clear, expected %d", x, y, f.At(x, y), ColorPurple)
			}
		}
	}
}

func TestClearThenSetPixel(t *testing.T) {
	f := NewFramebuffer(160, 128, ColorModeFull)
	f.Clear(6)
	f.SetPixel(80, 64, 14)

	for y := 0; y < 128; y++ {
		for x := 0; x < 160; x++ {
			want := Color(6)
			if x == 80 && y == 64 {
				want = 14
			}
			if got := f.At(x, y); got != want {
				t.Fatalf("At(%d, %d) = %d, expected %d", x, y, got, want)
			}
		}
	}
}

func TestColorModes(t *testing.T) {
	full := NewFramebuffer(4, 4, ColorModeFull)
	full.Clear(ColorBlue)
	full.Set(1, 1, ColorPurple)
	full.Set(2, 2, 24)
	full.Clear(30)

	if full.At(1, 1) != ColorPurple {
		t.Errorf("full mode: At(1, 1) = %d, expected %d", full.At(1, 1), ColorPurple)
	}
	if full.At(2, 2) != ColorBlue {
		t.Errorf("full mode: out-of-range write should be dropped, got %d", full.At(2, 2))
	}

	legacy := NewFramebuffer(4, 4, ColorModeLegacy16)
	legacy.Set(1, 1, ColorPurple) // 23 & 15 == 7
	legacy.Clear(ColorDarkRed)    // 16 & 15 == 0
	legacy.Set(2, 2, ColorPurple)

	if legacy.At(2, 2) != 7 {
		t.Errorf("legacy mode: At(2, 2) = %d, expected 7", legacy.At(2, 2))
	}
	if legacy.At(0, 0) != 0 {
		t.Errorf("legacy mode: Clear(16) should mask to 0, got %d", legacy.At(0, 0))
	}
}

func TestValidateColor(t *testing.T) {
	if err := ValidateColor(23, ColorModeFull); err != nil {
		t.Errorf("ValidateColor(23, full) = %v", err)
	}
	if err := ValidateColor(24, ColorModeFull); !errors.Is(err, ErrColorOutOfRange) {
		t.Errorf("ValidateColor(24, full) = %v, expected ErrColorOutOfRange", err)
	}
	if err := ValidateColor(16, ColorModeLegacy16); !errors.Is(err, ErrColorOutOfRange) {
		t.Errorf("ValidateColor(16, legacy16) = %v, expected ErrColorOutOfRange", err)
	}
}

func TestFillRectClips(t *testing.T) {
	f := NewFramebuffer(10, 10, ColorModeFull)
	f.FillRect(NewRect(-2, 8, 5, 5), ColorGreen)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := Color(0)
			if x < 3 && y >= 8 {
				want = ColorGreen
			}
			if f.At(x, y) != want {
				t.Errorf("At(%d, %d) = %d, expected %d", x, y, f.At(x, y), want)
			}
		}
	}
}

func TestBlit(t *testing.T) {
	bm := MustBitmap(
		".f.",
		"f9f",
		".f.",
	)
	f := NewFramebuffer(10, 10, ColorModeFull)
	f.Clear(ColorBlack)
	f.Set(1, 1, ColorWhite) // sits under the transparent top-left cell
	f.Blit(1, 1, bm)

	if f.At(1, 1) != ColorWhite {
		t.Errorf("transparent cell overwrote (1, 1): got %d", f.At(1, 1))
	}
	if f.At(2, 1) != ColorRed {
		t.Errorf("At(2, 1) = %d, expected %d", f.At(2, 1), ColorRed)
	}
	if f.At(2, 2) != ColorGreen {
		t.Errorf("At(2, 2) = %d, expected %d", f.At(2, 2), ColorGreen)
	}
}

func TestBlitClipsAtEdges(t *testing.T) {
	bm := MustBitmap("33", "33")
	f := NewFramebuffer(4, 4, ColorModeFull)
	f.Blit(3, 3, bm)
	f.Blit(-1, -1, bm)

	if f.At(3, 3) != ColorWhite || f.At(0, 0) != ColorWhite {
		t.Error("visible corners of clipped blits should be drawn")
	}
	if f.At(1, 1) != 0 || f.At(2, 2) != 0 {
		t.Error("blit drew outside its footprint")
	}
}

func TestParseBitmap(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		wantErr bool
	}{
		{"hex and extended", []string{"0123456789", "abcdefghij", "KLMN......"}, false},
		{"empty", nil, true},
		{"empty row", []string{""}, true},
		{"ragged", []string{"12", "1"}, true},
		{"bad character", []string{"1z"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBitmap(tc.rows...)
			if tc.wantErr && !errors.Is(err, ErrInvalidBitmap) {
				t.Errorf("ParseBitmap() error = %v, expected ErrInvalidBitmap", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("ParseBitmap() error = %v", err)
			}
		})
	}

	bm := MustBitmap("n.")
	if c, ok := bm.At(0, 0); !ok || c != 23 {
		t.Errorf("'n' should be colour 23, got (%d, %v)", c, ok)
	}
	if _, ok := bm.At(1, 0); ok {
		t.Error("'.' should be transparent")
	}
}

func TestTextOverlay(t *testing.T) {
	f := NewFramebuffer(160, 128, ColorModeFull)

	a := f.AddText(0, 0, "first")
	b := f.AddText(10, 20, "second")
	f.AddText(-50, 500, "off-screen is fine")

	texts := f.Texts()
	if len(texts) != 3 {
		t.Fatalf("Texts() has %d entries, expected 3", len(texts))
	}
	if texts[0].Text != "first" || texts[1].Text != "second" {
		t.Errorf("entries out of insertion order: %+v", texts)
	}
	if texts[1].X != 10 || texts[1].Y != 20 {
		t.Errorf("second entry at (%d, %d), expected (10, 20)", texts[1].X, texts[1].Y)
	}

	if err := f.RemoveText(a); err != nil {
		t.Fatalf("RemoveText() error = %v", err)
	}
	if err := f.RemoveText(a); !errors.Is(err, ErrTextNotFound) {
		t.Errorf("removing a stale handle: error = %v, expected ErrTextNotFound", err)
	}
	if f.Texts()[0].Handle != b {
		t.Errorf("after removal the first entry should be %d", b)
	}

	f.ClearText()
	if f.TextCount() != 0 {
		t.Errorf("TextCount() = %d after ClearText, expected 0", f.TextCount())
	}
	if err := f.RemoveText(b); !errors.Is(err, ErrTextNotFound) {
		t.Errorf("handle from before ClearText: error = %v, expected ErrTextNotFound", err)
	}

	c := f.AddText(1, 1, "again")
	if c == a || c == b {
		t.Error("handles must not be reused")
	}
}

func TestClearTextAfterMany(t *testing.T) {
	f := NewFramebuffer(8, 8, ColorModeFull)
	for i := 0; i < 50; i++ {
		f.AddText(i, i, "x")
	}
	f.ClearText()
	if f.TextCount() != 0 {
		t.Errorf("TextCount() = %d, expected 0", f.TextCount())
	}
}

func TestTextsReturnsCopy(t *testing.T) {
	f := NewFramebuffer(8, 8, ColorModeFull)
	f.AddText(0, 0, "keep")
	texts := f.Texts()
	texts[0].Text = "changed"

	if f.Texts()[0].Text != "keep" {
		t.Error("Texts() should return a copy")
	}
}
