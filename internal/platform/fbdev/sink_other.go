//go:build !linux

package fbdev

import (
	"fmt"
	"runtime"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
)

// Open always fails: framebuffer devices exist only on Linux.
func Open(path string, _ *core.Palette) (*Sink, error) {
	return nil, fmt.Errorf("%w: fbdev: %s unsupported on %s", engine.ErrHardwareUnavailable, path, runtime.GOOS)
}
