// Package fbdev drives real hardware on Linux: the framebuffer device for
// display and evdev keyboards or GPIO keys for input.
package fbdev

import (
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
	"github.com/vovakirdan/sprog/internal/platform/raster"
)

// Sink scales each frame onto a framebuffer device, keeping the aspect
// ratio and letterboxing the rest in black.
type Sink struct {
	dev     draw.Image
	closeFn func()
	palette *core.Palette
	opts    raster.Options

	srcW, srcH int
	dst        image.Rectangle
}

func newSink(dev draw.Image, closeFn func(), p *core.Palette) *Sink {
	if p == nil {
		cp := core.Cheerful24
		p = &cp
	}
	xdraw.Draw(dev, dev.Bounds(), image.Black, image.Point{}, xdraw.Src)
	return &Sink{
		dev:     dev,
		closeFn: closeFn,
		palette: p,
		opts:    raster.DefaultOptions(),
	}
}

// Refresh rasterises fb with its overlay text and writes it to the device.
func (s *Sink) Refresh(fb *core.Framebuffer) error {
	if fb.Width() != s.srcW || fb.Height() != s.srcH {
		s.srcW, s.srcH = fb.Width(), fb.Height()
		s.dst = raster.Fit(s.srcW, s.srcH, s.dev.Bounds())
		if s.dst.Empty() {
			err := fmt.Errorf("%w: fbdev: device bounds %v cannot show %dx%d",
				engine.ErrHardwareUnavailable, s.dev.Bounds(), s.srcW, s.srcH)
			s.srcW, s.srcH = 0, 0
			return err
		}
	}
	img := raster.RGBA(raster.FromFramebuffer(fb), s.palette, s.opts)
	raster.Scale(s.dev, s.dst, img)
	return nil
}

// Viewport returns the device area frames are drawn into.
func (s *Sink) Viewport() image.Rectangle {
	return s.dst
}

// Bounds returns the device resolution.
func (s *Sink) Bounds() image.Rectangle {
	return s.dev.Bounds()
}

// Close releases the device. The last frame stays on screen.
func (s *Sink) Close() {
	if s.closeFn != nil {
		s.closeFn()
		s.closeFn = nil
	}
}
