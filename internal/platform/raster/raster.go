// Package raster turns indexed frames into Go images: palette lookup,
// overlay text in a fixed bitmap font and nearest-neighbour scaling.
// The device and recording outputs share it.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/sprog/internal/core"
)

// Face is the overlay font. Text positions name the top-left corner of
// the first glyph cell.
var Face font.Face = basicfont.Face7x13

// Frame is an indexed image plus its overlay text.
type Frame struct {
	Width, Height int
	Pixels        []core.Color
	Texts         []core.TextEntry
}

// FromFramebuffer views fb as a Frame. Pixels are shared, not copied.
func FromFramebuffer(fb *core.Framebuffer) Frame {
	return Frame{
		Width:  fb.Width(),
		Height: fb.Height(),
		Pixels: fb.Pixels(),
		Texts:  fb.Texts(),
	}
}

// Options controls overlay rendering.
type Options struct {
	Text   core.Color // Overlay text colour
	Shadow bool       // Draw a black drop shadow under the text
}

// DefaultOptions draws white text with a shadow.
func DefaultOptions() Options {
	return Options{Text: core.ColorWhite, Shadow: true}
}

// RGBA renders f with palette p into a new image of the same size.
func RGBA(f Frame, p *core.Palette, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		row := f.Pixels[y*f.Width : (y+1)*f.Width]
		for x, c := range row {
			img.SetRGBA(x, y, p.RGBA(c))
		}
	}
	DrawTexts(img, f.Texts, p, opts)
	return img
}

// Paletted renders f as a paletted image whose palette is p, so colour
// indices are kept as they are.
func Paletted(f Frame, p *core.Palette, opts Options) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, f.Width, f.Height), p.Colors())
	for i, c := range f.Pixels {
		img.Pix[i] = uint8(c) % core.PaletteSize
	}
	DrawTexts(img, f.Texts, p, opts)
	return img
}

// DrawTexts draws overlay entries onto dst in order, each with its top-left
// corner at the entry position.
func DrawTexts(dst draw.Image, texts []core.TextEntry, p *core.Palette, opts Options) {
	if len(texts) == 0 {
		return
	}
	ascent := Face.Metrics().Ascent.Ceil()
	for _, t := range texts {
		if opts.Shadow {
			drawString(dst, t.X+1, t.Y+1+ascent, t.Text, p.RGBA(core.ColorBlack))
		}
		drawString(dst, t.X, t.Y+ascent, t.Text, p.RGBA(opts.Text))
	}
}

func drawString(dst draw.Image, x, baseline int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: Face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

// TextWidth returns the width of s in pixels when drawn with Face.
func TextWidth(s string) int {
	return font.MeasureString(Face, s).Ceil()
}

// Fit returns the largest rectangle with the aspect ratio of a w x h
// image that fits inside bounds, centred. Integer multiples are preferred
// so pixels stay square; when bounds is smaller than the image the result
// is scaled down proportionally.
func Fit(w, h int, bounds image.Rectangle) image.Rectangle {
	bw, bh := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || bw <= 0 || bh <= 0 {
		return image.Rectangle{}
	}

	dw, dh := w, h
	if k := min(bw/w, bh/h); k >= 1 {
		dw, dh = w*k, h*k
	} else if bw*h < bh*w {
		dw, dh = bw, h*bw/w
	} else {
		dw, dh = w*bh/h, bh
	}

	x0 := bounds.Min.X + (bw-dw)/2
	y0 := bounds.Min.Y + (bh-dh)/2
	return image.Rect(x0, y0, x0+dw, y0+dh)
}

// Scale draws src into r of dst with nearest-neighbour sampling.
func Scale(dst draw.Image, r image.Rectangle, src image.Image) {
	xdraw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), xdraw.Src, nil)
}

// Upscale returns src enlarged by an integer factor k.
func Upscale(src image.Image, k int) *image.RGBA {
	if k < 1 {
		k = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*k, b.Dy()*k))
	Scale(dst, dst.Bounds(), src)
	return dst
}
