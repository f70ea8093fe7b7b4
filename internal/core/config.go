package core

import (
	"fmt"
	"time"
)

// OverlayPolicy decides whether overlay text survives from one frame to the next.
type OverlayPolicy int

const (
	// OverlayPersist keeps overlay entries until the game removes them.
	OverlayPersist OverlayPolicy = iota

	// OverlayPerFrame empties the overlay at the start of every frame,
	// so Draw re-adds whatever text it wants shown.
	OverlayPerFrame
)

// String returns the config name of the policy.
func (p OverlayPolicy) String() string {
	switch p {
	case OverlayPersist:
		return "persist"
	case OverlayPerFrame:
		return "per-frame"
	default:
		return "unknown"
	}
}

// ParseOverlayPolicy converts a config name into an OverlayPolicy.
// An empty name selects OverlayPersist.
func ParseOverlayPolicy(s string) (OverlayPolicy, error) {
	switch s {
	case "", "persist":
		return OverlayPersist, nil
	case "per-frame":
		return OverlayPerFrame, nil
	default:
		return OverlayPersist, fmt.Errorf("core: unknown overlay policy %q", s)
	}
}

// RuntimeConfig contains the display and timing settings for one engine run.
type RuntimeConfig struct {
	Width         int           // Framebuffer width in pixels
	Height        int           // Framebuffer height in pixels
	FrameRate     int           // Target frames per second
	ColorMode     ColorMode     // Handling of out-of-range colour indices
	OverlayPolicy OverlayPolicy // Initial overlay clearing policy
	DebugButton   Button        // Held to trigger memory collection; empty disables
}

// DefaultConfig returns the settings of the reference device: a 160x128
// panel refreshed 30 times per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Width:         160,
		Height:        128,
		FrameRate:     30,
		ColorMode:     ColorModeFull,
		OverlayPolicy: OverlayPersist,
	}
}

// FramePeriod returns the target duration of one frame.
func (c RuntimeConfig) FramePeriod() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FrameRate)
}

// Validate checks that the dimensions and frame rate are usable.
func (c RuntimeConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("core: invalid display size %dx%d", c.Width, c.Height)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("core: invalid frame rate %d", c.FrameRate)
	}
	return nil
}
