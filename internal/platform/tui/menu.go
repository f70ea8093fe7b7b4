package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sprog/internal/registry"
	"github.com/vovakirdan/sprog/internal/storage"
)

// MenuItem represents a selectable demo in the menu.
type MenuItem struct {
	DemoID      string
	Title       string
	Description string
	Runs        int // Recorded sessions, 0 without a store
}

// MenuModel is the Bubble Tea model for the demo picker.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	width        int
	height       int
	keys         MenuKeyMap
	help         help.Model
	quitting     bool
	selected     *MenuItem // Set when user selects a demo
	openSessions bool      // True if user pressed Tab for the session log
}

// NewMenuModel creates a menu over every registered demo. Run counts are
// read from store when it is not nil.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	demos := registry.List()
	items := make([]MenuItem, 0, len(demos))

	var stats map[string]*storage.DemoStats
	if store != nil {
		// Counts are decoration; the menu works without them
		stats, _ = store.GetAllDemoStats()
	}

	for _, d := range demos {
		item := MenuItem{
			DemoID:      d.ID,
			Title:       d.Title,
			Description: d.Description,
		}
		if s, ok := stats[d.ID]; ok {
			item.Runs = s.Runs
		}
		items = append(items, item)
	}

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the demo
		}

	case key.Matches(msg, m.keys.Sessions):
		m.openSessions = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S P R O G  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a demo", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		runs := ""
		if item.Runs > 0 {
			runs = fmt.Sprintf(" (%d runs)", item.Runs)
		}

		line := fmt.Sprintf("%s%s%s", cursor, item.Title, runs)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(statusStyle.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsSessions returns true if user asked for the session log.
func (m MenuModel) WantsSessions() bool {
	return m.openSessions
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	DemoID        string
	WantsSessions bool
	Quit          bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, width, height int) (MenuResult, error) {
	model := NewMenuModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}
	return m.result(), nil
}

func (m MenuModel) result() MenuResult {
	switch {
	case m.WantsSessions():
		return MenuResult{WantsSessions: true}
	case m.IsQuitting():
		return MenuResult{Quit: true}
	case m.Selected() != nil:
		return MenuResult{DemoID: m.Selected().DemoID}
	}
	return MenuResult{Quit: true}
}
