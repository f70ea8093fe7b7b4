package record

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/platform/raster"
)

// WritePNG encodes f as a paletted PNG, enlarged by an integer scale.
// Overlay text is drawn after scaling so it stays legible.
func WritePNG(w io.Writer, f raster.Frame, p *core.Palette, scale int) error {
	if p == nil {
		cp := core.Cheerful24
		p = &cp
	}
	if scale < 1 {
		scale = 1
	}

	img := raster.Paletted(raster.Frame{Width: f.Width, Height: f.Height, Pixels: f.Pixels}, p, raster.DefaultOptions())
	if scale > 1 {
		big := image.NewPaletted(image.Rect(0, 0, f.Width*scale, f.Height*scale), img.Palette)
		raster.Scale(big, big.Bounds(), img)
		img = big
	}
	texts := make([]core.TextEntry, len(f.Texts))
	for i, t := range f.Texts {
		t.X, t.Y = t.X*scale, t.Y*scale
		texts[i] = t
	}
	raster.DrawTexts(img, texts, p, raster.DefaultOptions())

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("record: png: %w", err)
	}
	return nil
}
