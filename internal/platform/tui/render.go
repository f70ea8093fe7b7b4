package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/platform/raster"
)

// upperHalf paints the top pixel of a cell in the foreground colour and
// the bottom pixel in the background colour.
const upperHalf = '▀'

// cellStyle identifies one lipgloss style: a foreground/background pair,
// or overlay text on a background.
type cellStyle struct {
	fg, bg core.Color
	text   bool
}

type cell struct {
	style cellStyle
	r     rune
	top   core.Color // pixel colour under the cell, kept for overlay backgrounds
}

// Renderer converts frames to styled terminal text, two pixel rows per
// terminal line. Styles are cached per colour pair.
type Renderer struct {
	palette *core.Palette
	text    core.Color
	styles  map[cellStyle]lipgloss.Style
	cells   []cell
}

// NewRenderer creates a renderer for palette p. Overlay text is drawn in
// white until SetTextColor changes it.
func NewRenderer(p *core.Palette) *Renderer {
	return &Renderer{
		palette: p,
		text:    core.ColorWhite,
		styles:  make(map[cellStyle]lipgloss.Style),
	}
}

// SetTextColor changes the overlay text colour.
func (r *Renderer) SetTextColor(c core.Color) {
	r.text = c
}

func (r *Renderer) style(s cellStyle) lipgloss.Style {
	if st, ok := r.styles[s]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(r.palette.Hex(s.fg))).
		Background(lipgloss.Color(r.palette.Hex(s.bg)))
	if s.text {
		st = st.Bold(true)
	}
	r.styles[s] = st
	return st
}

// Render converts f to a string with (f.Height+1)/2 lines of f.Width cells.
// Overlay text at pixel (x, y) lands on cell (x, y/2); characters outside
// the grid are dropped.
func (r *Renderer) Render(f raster.Frame) string {
	rows := (f.Height + 1) / 2
	if cap(r.cells) < rows*f.Width {
		r.cells = make([]cell, rows*f.Width)
	}
	cells := r.cells[:rows*f.Width]

	for cy := 0; cy < rows; cy++ {
		for x := 0; x < f.Width; x++ {
			top := f.Pixels[2*cy*f.Width+x]
			bottom := top
			if 2*cy+1 < f.Height {
				bottom = f.Pixels[(2*cy+1)*f.Width+x]
			}
			cells[cy*f.Width+x] = cell{style: cellStyle{fg: top, bg: bottom}, r: upperHalf, top: top}
		}
	}

	for _, t := range f.Texts {
		cy := floorDiv(t.Y, 2)
		if cy < 0 || cy >= rows {
			continue
		}
		x := t.X
		for _, ch := range t.Text {
			if x >= 0 && x < f.Width {
				c := &cells[cy*f.Width+x]
				c.style = cellStyle{fg: r.text, bg: c.top, text: true}
				c.r = ch
			}
			x++
		}
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(rows * f.Width * 4)

	for cy := 0; cy < rows; cy++ {
		if cy > 0 {
			sb.WriteRune('\n')
		}
		line := cells[cy*f.Width : (cy+1)*f.Width]

		// Group consecutive cells with the same style to minimise escapes
		x := 0
		for x < len(line) {
			start := line[x].style
			var run strings.Builder
			for x < len(line) && line[x].style == start {
				run.WriteRune(line[x].r)
				x++
			}
			sb.WriteString(r.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
