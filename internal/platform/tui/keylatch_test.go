package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sprog/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testLatch(now *time.Time) *KeyLatch {
	l := NewKeyLatch(BindButtons(map[core.Button][]string{
		"w": {"w", "up"},
		"d": {"d"},
		"x": nil,
	}), 100*time.Millisecond)
	l.now = func() time.Time { return *now }
	return l
}

func TestBindButtonsSorted(t *testing.T) {
	b := BindButtons(map[core.Button][]string{
		"s": {"s"},
		"a": {"a", "left"},
		"z": {},
	})
	if len(b) != 2 {
		t.Fatalf("got %d bindings, expected 2", len(b))
	}
	if b[0].Button != "a" || b[1].Button != "s" {
		t.Errorf("order = %s, %s; expected a, s", b[0].Button, b[1].Button)
	}
	if h := b[0].Key.Help(); h.Key != "a/left" || h.Desc != "a" {
		t.Errorf("help = %+v", h)
	}
}

func TestKeyLatchHoldsUntilExpiry(t *testing.T) {
	now := time.Unix(0, 0)
	l := testLatch(&now)

	if !l.Press(tea.KeyMsg{Type: tea.KeyUp}) {
		t.Fatal("up should match the w binding")
	}

	tests := []struct {
		after time.Duration
		held  bool
	}{
		{0, true},
		{50 * time.Millisecond, true},
		{99 * time.Millisecond, true},
		{100 * time.Millisecond, false},
	}
	start := now
	for _, tc := range tests {
		now = start.Add(tc.after)
		raw, err := l.Sample()
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if raw["w"] != tc.held {
			t.Errorf("after %v: w held = %v, expected %v", tc.after, raw["w"], tc.held)
		}
	}
}

func TestKeyLatchRepeatExtends(t *testing.T) {
	now := time.Unix(0, 0)
	l := testLatch(&now)

	l.Press(runeKey("d"))
	now = now.Add(80 * time.Millisecond)
	l.Press(runeKey("d")) // auto-repeat
	now = now.Add(80 * time.Millisecond)

	raw, _ := l.Sample()
	if !raw["d"] {
		t.Error("repeated key should keep the button held")
	}
	if raw["w"] {
		t.Error("w was never pressed")
	}
}

func TestKeyLatchIgnoresUnbound(t *testing.T) {
	now := time.Unix(0, 0)
	l := testLatch(&now)

	if l.Press(runeKey("x")) {
		t.Error("x has no keys and should not match")
	}
	raw, _ := l.Sample()
	if len(raw) != 0 {
		t.Errorf("raw = %v, expected nothing held", raw)
	}
}

func TestKeyLatchRelease(t *testing.T) {
	now := time.Unix(0, 0)
	l := testLatch(&now)

	l.Press(runeKey("w"))
	l.Press(runeKey("d"))
	l.Release()

	raw, _ := l.Sample()
	if len(raw) != 0 {
		t.Errorf("raw = %v after Release, expected nothing held", raw)
	}
}
