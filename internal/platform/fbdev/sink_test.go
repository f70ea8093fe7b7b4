package fbdev

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
)

func TestSinkScalesAndLetterboxes(t *testing.T) {
	dev := image.NewRGBA(image.Rect(0, 0, 100, 60))
	for i := range dev.Pix {
		dev.Pix[i] = 0x7f
	}
	closed := false
	s := newSink(dev, func() { closed = true }, nil)

	fb := core.NewFramebuffer(20, 10, core.ColorModeFull)
	fb.Clear(core.ColorRed)
	if err := s.Refresh(fb); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	// 5x scale fills 100x50, centred with 5 rows of letterbox either side
	if want := image.Rect(0, 5, 100, 55); s.Viewport() != want {
		t.Fatalf("viewport = %v, expected %v", s.Viewport(), want)
	}
	red := core.Cheerful24.RGBA(core.ColorRed)
	if got := dev.RGBAAt(50, 30); got != red {
		t.Errorf("centre = %v, expected %v", got, red)
	}
	black := color.RGBA{A: 0xff}
	for _, y := range []int{0, 4, 55, 59} {
		if got := dev.RGBAAt(50, y); got != black {
			t.Errorf("letterbox row %d = %v, expected black", y, got)
		}
	}

	s.Close()
	s.Close()
	if !closed {
		t.Error("Close should release the device")
	}
}

func TestSinkRecomputesViewport(t *testing.T) {
	dev := image.NewRGBA(image.Rect(0, 0, 64, 64))
	s := newSink(dev, nil, nil)

	_ = s.Refresh(core.NewFramebuffer(32, 32, core.ColorModeFull))
	if s.Viewport() != dev.Bounds() {
		t.Errorf("viewport = %v, expected full device", s.Viewport())
	}
	_ = s.Refresh(core.NewFramebuffer(16, 8, core.ColorModeFull))
	if want := image.Rect(0, 16, 64, 48); s.Viewport() != want {
		t.Errorf("viewport = %v, expected %v", s.Viewport(), want)
	}
}

func TestSinkEmptyDevice(t *testing.T) {
	s := newSink(image.NewRGBA(image.Rectangle{}), nil, nil)
	err := s.Refresh(core.NewFramebuffer(8, 8, core.ColorModeFull))
	if !errors.Is(err, engine.ErrHardwareUnavailable) {
		t.Errorf("err = %v, expected ErrHardwareUnavailable", err)
	}
	if err != nil && !strings.Contains(err.Error(), "8x8") {
		t.Errorf("err = %v, expected it to name the 8x8 framebuffer", err)
	}
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open("/nonexistent/fb9", nil)
	if !errors.Is(err, engine.ErrHardwareUnavailable) {
		t.Errorf("err = %v, expected ErrHardwareUnavailable", err)
	}
}
