package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameMsg carries one rendered frame from the engine to the UI.
type FrameMsg struct {
	View  string
	Frame uint64
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// screenModel is the Bubble Tea model behind the terminal sink. It only
// displays frames and forwards keys; the engine owns the simulation.
type screenModel struct {
	title    string
	view     string
	frame    uint64
	width    int
	height   int
	controls Controls
	keys     screenKeyMap
	help     help.Model
	latch    *KeyLatch
	quitting bool
}

func newScreenModel(title string, controls Controls, latch *KeyLatch) screenModel {
	m := screenModel{
		title:    title,
		controls: controls,
		keys:     screenKeyMap{controls: controls},
		help:     help.New(),
		latch:    latch,
	}
	if latch != nil {
		m.keys.buttons = latch.Bindings()
	}
	return m
}

// Init initializes the model. Frames arrive from the engine, so there is
// nothing to schedule.
func (m screenModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m screenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.view = msg.View
		m.frame = msg.Frame
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m screenModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.controls.Quit):
		m.quitting = true
		if m.latch != nil {
			m.latch.Release()
		}
		return m, tea.Quit
	case key.Matches(msg, m.controls.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.latch != nil {
		m.latch.Press(msg)
	}
	return m, nil
}

// View renders the latest frame with a status line and the key help.
func (m screenModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  frame %d", m.frame)))
	b.WriteString("\n")

	footer := m.help.View(m.keys)
	body := m.view
	if m.width > 0 && m.height > 0 {
		// Crop rather than let the terminal wrap oversized frames
		maxH := m.height - 1 - lipgloss.Height(footer)
		if maxH < 1 {
			maxH = 1
		}
		body = lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(maxH).Render(body)
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(footer)

	return b.String()
}
