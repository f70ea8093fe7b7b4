package core

import (
	"fmt"
	"image/color"
)

// Color is an index into the display palette.
type Color uint8

// PaletteSize is the number of entries in a display palette.
const PaletteSize = 24

// Named indices into the Cheerful24 palette.
const (
	ColorBlack Color = iota
	ColorDarkGray
	ColorLightGray
	ColorWhite
	ColorCyan
	ColorBlue
	ColorDarkBlue
	ColorNavy
	ColorDarkTeal
	ColorGreen
	ColorBrightGreen
	ColorLightGreen
	ColorLightYellow
	ColorYellow
	ColorOrange
	ColorRed
	ColorDarkRed
	ColorMaroon
	ColorBrown
	ColorLightBrown
	ColorTan
	ColorPeach
	ColorPink
	ColorPurple
)

// ColorMode decides how out-of-range colour indices are treated on write.
type ColorMode int

const (
	// ColorModeFull accepts indices 0-23 and drops writes outside that range.
	ColorModeFull ColorMode = iota

	// ColorModeLegacy16 masks every index to its low 4 bits, reproducing
	// the 16-colour ceiling of the first device firmware.
	ColorModeLegacy16
)

// String returns the config name of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorModeFull:
		return "full"
	case ColorModeLegacy16:
		return "legacy16"
	default:
		return "unknown"
	}
}

// ParseColorMode converts a config name into a ColorMode.
// An empty name selects ColorModeFull.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "full":
		return ColorModeFull, nil
	case "legacy16":
		return ColorModeLegacy16, nil
	default:
		return ColorModeFull, fmt.Errorf("core: unknown color mode %q", s)
	}
}

// ValidateColor reports whether c can be written without loss under mode.
func ValidateColor(c Color, mode ColorMode) error {
	limit := Color(PaletteSize)
	if mode == ColorModeLegacy16 {
		limit = 16
	}
	if c >= limit {
		return fmt.Errorf("%w: %d (mode %s)", ErrColorOutOfRange, c, mode)
	}
	return nil
}

// normalize applies the mode to c. ok is false when the write must be dropped.
func (m ColorMode) normalize(c Color) (Color, bool) {
	if m == ColorModeLegacy16 {
		return c & 0x0f, true
	}
	if c >= PaletteSize {
		return 0, false
	}
	return c, true
}

// RGB is a 24-bit palette entry.
type RGB struct {
	R, G, B uint8
}

// Palette maps colour indices to RGB values.
type Palette [PaletteSize]RGB

// Cheerful24 is the default device palette.
var Cheerful24 = Palette{
	{15, 15, 18},    // black
	{80, 83, 89},    // dark gray
	{182, 191, 188}, // light gray
	{242, 251, 255}, // white
	{94, 231, 255},  // cyan
	{0, 161, 219},   // blue
	{29, 91, 184},   // dark blue
	{31, 44, 102},   // navy
	{27, 82, 69},    // dark teal
	{46, 143, 70},   // green
	{88, 217, 46},   // bright green
	{203, 255, 112}, // light green
	{255, 255, 143}, // light yellow
	{255, 223, 43},  // yellow
	{240, 119, 26},  // orange
	{227, 34, 57},   // red
	{133, 21, 64},   // dark red
	{64, 26, 36},    // maroon
	{156, 59, 48},   // brown
	{201, 93, 60},   // light brown
	{237, 138, 95},  // tan
	{255, 188, 166}, // peach
	{235, 117, 190}, // pink
	{119, 56, 140},  // purple
}

// RGBA returns the palette entry for c as an opaque color.RGBA.
// Indices past the end of the palette wrap around.
func (p *Palette) RGBA(c Color) color.RGBA {
	e := p[int(c)%PaletteSize]
	return color.RGBA{R: e.R, G: e.G, B: e.B, A: 0xff}
}

// Hex returns the palette entry for c in #rrggbb form.
func (p *Palette) Hex(c Color) string {
	e := p[int(c)%PaletteSize]
	return fmt.Sprintf("#%02x%02x%02x", e.R, e.G, e.B)
}

// Colors returns the palette as a color.Palette, for paletted images.
func (p *Palette) Colors() color.Palette {
	out := make(color.Palette, PaletteSize)
	for i := range p {
		out[i] = p.RGBA(Color(i))
	}
	return out
}
