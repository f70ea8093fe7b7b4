package core

import "fmt"

// Transparent is the bitmap character for a cell that is not drawn.
const Transparent = '.'

// Bitmap is a small rectangular image of palette indices with optional
// transparency, parsed from rows of text.
type Bitmap struct {
	w, h   int
	cells  []Color
	opaque []bool
}

// ParseBitmap builds a bitmap from equal-length rows. Each character is one
// pixel: '.' is transparent, '0'-'9' and 'a'-'n' (either case) are colours
// 0-23, so hex digits keep their usual meaning.
func ParseBitmap(rows ...string) (Bitmap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Bitmap{}, fmt.Errorf("%w: empty", ErrInvalidBitmap)
	}
	w := len(rows[0])
	bm := Bitmap{
		w:      w,
		h:      len(rows),
		cells:  make([]Color, w*len(rows)),
		opaque: make([]bool, w*len(rows)),
	}
	for y, row := range rows {
		if len(row) != w {
			return Bitmap{}, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidBitmap, y, len(row), w)
		}
		for x := 0; x < w; x++ {
			ch := row[x]
			if ch == Transparent {
				continue
			}
			c, ok := bitmapColor(ch)
			if !ok {
				return Bitmap{}, fmt.Errorf("%w: character %q at (%d, %d)", ErrInvalidBitmap, ch, x, y)
			}
			bm.cells[y*w+x] = c
			bm.opaque[y*w+x] = true
		}
	}
	return bm, nil
}

// MustBitmap is like ParseBitmap but panics on malformed input.
// Intended for package-level sprite tables.
func MustBitmap(rows ...string) Bitmap {
	bm, err := ParseBitmap(rows...)
	if err != nil {
		panic(err)
	}
	return bm
}

func bitmapColor(ch byte) (Color, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return Color(ch - '0'), true
	case ch >= 'a' && ch <= 'n':
		return Color(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'N':
		return Color(ch-'A') + 10, true
	}
	return 0, false
}

// Width returns the bitmap width in pixels.
func (b Bitmap) Width() int {
	return b.w
}

// Height returns the bitmap height in pixels.
func (b Bitmap) Height() int {
	return b.h
}

// At returns the colour at (x, y) and whether the cell is drawn.
func (b Bitmap) At(x, y int) (Color, bool) {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return 0, false
	}
	i := y*b.w + x
	return b.cells[i], b.opaque[i]
}

// Recolor returns a copy with every opaque cell of colour from set to to.
func (b Bitmap) Recolor(from, to Color) Bitmap {
	out := Bitmap{
		w:      b.w,
		h:      b.h,
		cells:  make([]Color, len(b.cells)),
		opaque: make([]bool, len(b.opaque)),
	}
	copy(out.cells, b.cells)
	copy(out.opaque, b.opaque)
	for i, c := range out.cells {
		if out.opaque[i] && c == from {
			out.cells[i] = to
		}
	}
	return out
}
