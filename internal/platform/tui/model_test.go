package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sprog/internal/core"
)

func TestScreenModelShowsFrames(t *testing.T) {
	m := newScreenModel("plasma", DefaultControls(), nil)

	next, _ := m.Update(FrameMsg{View: "PIXELS", Frame: 7})
	view := next.View()

	if !strings.Contains(view, "PIXELS") {
		t.Error("view should contain the frame body")
	}
	if !strings.Contains(view, "frame 7") {
		t.Error("view should show the frame counter")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view should show the key help")
	}
}

func TestScreenModelQuit(t *testing.T) {
	now := time.Unix(0, 0)
	latch := testLatch(&now)
	m := newScreenModel("demo", DefaultControls(), latch)

	latch.Press(runeKey("w"))
	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if next.View() != "" {
		t.Error("view should be empty after quitting")
	}
	if raw, _ := latch.Sample(); len(raw) != 0 {
		t.Error("quitting should release latched buttons")
	}
}

func TestScreenModelForwardsKeys(t *testing.T) {
	now := time.Unix(0, 0)
	latch := testLatch(&now)
	m := newScreenModel("demo", DefaultControls(), latch)

	_, cmd := m.Update(runeKey("d"))
	if cmd != nil {
		t.Error("button keys should not produce commands")
	}
	raw, _ := latch.Sample()
	if !raw["d"] {
		t.Error("d should be latched")
	}

	// Help toggling is handled by the UI and never reaches the latch
	next, _ := m.Update(runeKey("?"))
	if !next.(screenModel).help.ShowAll {
		t.Error("? should expand the help")
	}
}

func TestScreenModelCropsToWindow(t *testing.T) {
	m := newScreenModel("demo", DefaultControls(), nil)
	body := strings.Repeat(strings.Repeat("#", 50)+"\n", 40)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	next, _ = next.Update(FrameMsg{View: body, Frame: 1})

	lines := strings.Split(next.View(), "\n")
	if len(lines) > 10 {
		t.Errorf("view has %d lines, expected at most 10", len(lines))
	}
	for _, l := range lines[1 : len(lines)-1] {
		if strings.Count(l, "#") > 20 {
			t.Errorf("line %q is wider than the window", l)
		}
	}
}

func TestSinkDropsFramesAfterExit(t *testing.T) {
	s := NewSink(SinkOptions{Title: "demo"})
	close(s.done) // UI already gone

	fb := core.NewFramebuffer(4, 4, core.ColorModeFull)
	if err := s.Refresh(fb); err != nil {
		t.Errorf("Refresh after a clean exit: %v", err)
	}
	if s.frame != 0 {
		t.Errorf("frame = %d, expected dropped frames not to count", s.frame)
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done should be closed")
	}
}
