package core

import "fmt"

// Framebuffer is a fixed-size grid of palette indices plus an ordered list
// of overlay text. Games draw into it; a display sink pushes it to hardware.
type Framebuffer struct {
	width  int
	height int
	mode   ColorMode
	pix    []Color
	text   TextOverlay
}

// NewFramebuffer creates a framebuffer cleared to colour 0.
// It panics if either dimension is not positive.
func NewFramebuffer(width, height int, mode ColorMode) *Framebuffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("core: invalid framebuffer size %dx%d", width, height))
	}
	return &Framebuffer{
		width:  width,
		height: height,
		mode:   mode,
		pix:    make([]Color, width*height),
	}
}

// Width returns the grid width in pixels.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the grid height in pixels.
func (f *Framebuffer) Height() int {
	return f.height
}

// Mode returns the colour mode applied to writes.
func (f *Framebuffer) Mode() ColorMode {
	return f.mode
}

// Bounds returns the grid as a rectangle at the origin.
func (f *Framebuffer) Bounds() Rect {
	return NewRect(0, 0, f.width, f.height)
}

// Clear sets every cell to c.
// Under ColorModeFull an out-of-range c leaves the grid untouched.
func (f *Framebuffer) Clear(c Color) {
	c, ok := f.mode.normalize(c)
	if !ok {
		return
	}
	for i := range f.pix {
		f.pix[i] = c
	}
}

// SetPixel writes one cell. Coordinates are floored before the bounds check;
// anything outside the grid, NaN included, is silently dropped.
func (f *Framebuffer) SetPixel(x, y float64, c Color) {
	ix, ok := floorInt(x)
	if !ok {
		return
	}
	iy, ok := floorInt(y)
	if !ok {
		return
	}
	f.Set(ix, iy, c)
}

// Set writes one cell at integer coordinates.
// Out-of-bounds coordinates are silently ignored.
func (f *Framebuffer) Set(x, y int, c Color) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	c, ok := f.mode.normalize(c)
	if !ok {
		return
	}
	f.pix[y*f.width+x] = c
}

// At returns the colour at the given position.
// Returns 0 for out-of-bounds coordinates.
func (f *Framebuffer) At(x, y int) Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	return f.pix[y*f.width+x]
}

// FillRect fills a rectangular area, clipped to the grid.
func (f *Framebuffer) FillRect(r Rect, c Color) {
	x0, y0 := Clamp(r.X, 0, f.width), Clamp(r.Y, 0, f.height)
	x1, y1 := Clamp(r.Right(), 0, f.width), Clamp(r.Bottom(), 0, f.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			f.Set(x, y, c)
		}
	}
}

// Blit draws bm with its top-left corner at (x, y). Transparent cells are
// skipped; every other cell goes through Set and is clipped the same way.
func (f *Framebuffer) Blit(x, y int, bm Bitmap) {
	for row := 0; row < bm.h; row++ {
		for col := 0; col < bm.w; col++ {
			c, opaque := bm.At(col, row)
			if !opaque {
				continue
			}
			f.Set(x+col, y+row, c)
		}
	}
}

// Pixels returns the backing grid in row-major order.
// Sinks read it; callers must not modify it.
func (f *Framebuffer) Pixels() []Color {
	return f.pix
}

// AddText appends an overlay entry and returns its handle.
func (f *Framebuffer) AddText(x, y int, text string) TextHandle {
	return f.text.add(x, y, text)
}

// RemoveText removes one overlay entry.
// Returns ErrTextNotFound if the handle was already removed or cleared.
func (f *Framebuffer) RemoveText(h TextHandle) error {
	return f.text.remove(h)
}

// ClearText removes every overlay entry.
func (f *Framebuffer) ClearText() {
	f.text.clear()
}

// Texts returns a copy of the overlay entries in paint order.
func (f *Framebuffer) Texts() []TextEntry {
	return f.text.entries()
}

// TextCount returns the number of overlay entries.
func (f *Framebuffer) TextCount() int {
	return len(f.text.items)
}
