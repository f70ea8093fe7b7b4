package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sprog/internal/core"
)

// KeyLatch turns terminal key presses into button states. Terminals report
// no key releases, so a press holds its button for the latch duration;
// keyboard auto-repeat refreshes the deadline while the key stays down.
//
// Press is called from the UI goroutine and Sample from the engine, so the
// deadlines are guarded by a mutex.
type KeyLatch struct {
	bindings []ButtonBinding
	latch    time.Duration
	now      func() time.Time

	mu    sync.Mutex
	until map[core.Button]time.Time
}

// NewKeyLatch creates a latch for the given bindings.
func NewKeyLatch(bindings []ButtonBinding, latch time.Duration) *KeyLatch {
	return &KeyLatch{
		bindings: bindings,
		latch:    latch,
		now:      time.Now,
		until:    make(map[core.Button]time.Time),
	}
}

// Press latches every button bound to msg and reports whether any was.
func (l *KeyLatch) Press(msg tea.KeyMsg) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	matched := false
	for _, b := range l.bindings {
		if key.Matches(msg, b.Key) {
			l.until[b.Button] = now.Add(l.latch)
			matched = true
		}
	}
	return matched
}

// Release drops every latched button.
func (l *KeyLatch) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.until)
}

// Sample reports the buttons whose latch has not expired.
func (l *KeyLatch) Sample() (core.RawInput, error) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	raw := make(core.RawInput, len(l.until))
	for b, deadline := range l.until {
		if now.Before(deadline) {
			raw[b] = true
		} else {
			delete(l.until, b)
		}
	}
	return raw, nil
}

// Bindings returns the button bindings the latch reacts to.
func (l *KeyLatch) Bindings() []ButtonBinding {
	return l.bindings
}
