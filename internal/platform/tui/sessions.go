package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sprog/internal/registry"
	"github.com/vovakirdan/sprog/internal/storage"
)

// Session log layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show demo list sidebar
	sidebarWidth       = 20  // Width of demo list sidebar
	maxSessions        = 100 // Max sessions to load
)

// SessionsKeyMap defines the key bindings for the session log.
type SessionsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextDemo key.Binding
	PrevDemo key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextDemo, k.PrevDemo, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextDemo, k.PrevDemo},
		{k.Back, k.Quit},
	}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextDemo: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next demo"),
		),
		PrevDemo: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev demo"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SessionsModel is the Bubble Tea model for the session log screen.
type SessionsModel struct {
	demos       []registry.DemoInfo
	demoCursor  int
	store       *storage.Store
	sessions    []storage.Session
	stats       *storage.DemoStats
	table       table.Model
	help        help.Model
	keys        SessionsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewSessionsModel creates a new session log model.
func NewSessionsModel(store *storage.Store, width, height int) SessionsModel {
	m := SessionsModel{
		demos:       registry.List(),
		store:       store,
		keys:        DefaultSessionsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.demos) > 0 {
		m.loadSessions(m.demos[0].ID)
	}
	return m
}

// createTable creates a new table sized to the window.
func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 12},
		{Title: "Sink", Width: 8},
		{Title: "Frames", Width: 8},
		{Title: "FPS", Width: 6},
		{Title: "Over", Width: 5},
		{Title: "Result", Width: 8},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	// Give spare room to the result column, which holds error text
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[5].Width += min(extra, 40)
	}

	height := m.height - 10 // Leave room for header, summary and help
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSessions loads the recent sessions and aggregates for demoID.
func (m *SessionsModel) loadSessions(demoID string) {
	m.sessions, m.stats = nil, nil
	if m.store != nil {
		if sessions, err := m.store.RecentSessions(demoID, maxSessions); err == nil {
			m.sessions = sessions
		}
		if stats, err := m.store.GetDemoStats(demoID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded sessions.
func (m *SessionsModel) updateTableRows() {
	m.table.SetRows(sessionRows(m.sessions))
	m.table.GotoTop()
}

func sessionRows(sessions []storage.Session) []table.Row {
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		result := "ok"
		if s.Error != "" {
			result = s.Error
		}
		rows[i] = table.Row{
			s.StartedAt.Local().Format("Jan 02 15:04"),
			s.Sink,
			fmt.Sprintf("%d", s.Frames),
			fmt.Sprintf("%.1f", s.FPS()),
			fmt.Sprintf("%d", s.Overruns),
			result,
		}
	}
	return rows
}

// Init initializes the session log model.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session log.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextDemo):
			if len(m.demos) > 0 {
				m.demoCursor = (m.demoCursor + 1) % len(m.demos)
				m.loadSessions(m.demos[m.demoCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevDemo):
			if len(m.demos) > 0 {
				m.demoCursor = (m.demoCursor + len(m.demos) - 1) % len(m.demos)
				m.loadSessions(m.demos[m.demoCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the session log.
func (m SessionsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "SESSIONS"
	if len(m.demos) > 0 {
		title = fmt.Sprintf("SESSIONS - %s", m.demos[m.demoCursor].Title)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(statusStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableBox := boxStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableBox))
	} else {
		b.WriteString(centerText(tableBox, m.width))
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary is the one-line aggregate for the current demo.
func (m SessionsModel) summary() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "never run"
	}
	return fmt.Sprintf("%d runs, %d frames, %.1f fps, %d overruns, %d failed",
		m.stats.Runs, m.stats.TotalFrames, m.stats.AvgFPS, m.stats.Overruns, m.stats.Failures)
}

// renderSidebar renders the demo list.
func (m SessionsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Demos\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, d := range m.demos {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.demoCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := d.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m SessionsModel) renderTableContent() string {
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nRun a demo to log one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SessionsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SessionsModel) IsQuitting() bool {
	return m.quitting
}

// RunSessions runs the session log screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunSessions(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewSessionsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(SessionsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
