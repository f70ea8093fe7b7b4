//go:build !linux

package fbdev

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sprog/internal/core"
	"github.com/vovakirdan/sprog/internal/engine"
)

// OpenEvdev always fails: evdev exists only on Linux.
func OpenEvdev(_ context.Context, _ []string, _ map[uint16]core.Button, _ *log.Logger) (*EvdevSource, error) {
	return nil, fmt.Errorf("%w: evdev: unsupported on %s", engine.ErrHardwareUnavailable, runtime.GOOS)
}
