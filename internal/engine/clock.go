package engine

import (
	"context"
	"sync"
	"time"
)

// Clock is the time source used for frame pacing.
type Clock interface {
	// Now returns the current time. Values must carry a monotonic reading
	// or otherwise be safe to subtract.
	Now() time.Time

	// Sleep blocks for d or until ctx is done, whichever comes first.
	Sleep(ctx context.Context, d time.Duration)
}

// WallClock is the real system clock.
type WallClock struct{}

// Now returns time.Now(), which includes a monotonic reading.
func (WallClock) Now() time.Time {
	return time.Now()
}

// Sleep waits on a timer so that context cancellation interrupts it.
func (WallClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// VirtualClock is a Clock that never blocks: Sleep advances its time
// instantly. It suits headless recording and tests, where frames should
// be produced as fast as possible but timestamps still look paced.
type VirtualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewVirtualClock returns a clock starting at start.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

// Now returns the virtual time.
func (c *VirtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the virtual time by d unless ctx is already done.
func (c *VirtualClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 || ctx.Err() != nil {
		return
	}
	c.Advance(d)
}

// Advance moves the virtual time forward by d.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
