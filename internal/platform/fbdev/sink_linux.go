//go:build linux

package fbdev

import (
	"fmt"

	fb "github.com/gonutz/framebuffer"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
)

// Open maps the framebuffer device at path, e.g. /dev/fb0.
func Open(path string, p *core.Palette) (*Sink, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: fbdev: open %s: %w", engine.ErrHardwareUnavailable, path, err)
	}
	return newSink(dev, func() { dev.Close() }, p), nil
}
