package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/sprog/internal/core"
)

// Controls are the keys the terminal UI handles itself; they never reach
// the running demo.
type Controls struct {
	Quit key.Binding
	Help key.Binding
}

// DefaultControls returns q / ctrl+c to quit and ? to expand the help.
func DefaultControls() Controls {
	return Controls{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ButtonBinding maps terminal keys onto one game button.
type ButtonBinding struct {
	Button core.Button
	Key    key.Binding
}

// BindButtons converts configured key names into bindings, sorted by
// button name. Buttons without keys are skipped.
func BindButtons(keys map[core.Button][]string) []ButtonBinding {
	out := make([]ButtonBinding, 0, len(keys))
	for b, names := range keys {
		if len(names) == 0 {
			continue
		}
		out = append(out, ButtonBinding{
			Button: b,
			Key: key.NewBinding(
				key.WithKeys(names...),
				key.WithHelp(strings.Join(names, "/"), string(b)),
			),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Button < out[j].Button
	})
	return out
}

// screenKeyMap is the footer help while a demo runs: controls in the short
// view, every button binding in the full one.
type screenKeyMap struct {
	controls Controls
	buttons  []ButtonBinding
}

// ShortHelp returns keybindings for the short help view.
func (k screenKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.controls.Help, k.controls.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k screenKeyMap) FullHelp() [][]key.Binding {
	cols := [][]key.Binding{{k.controls.Help, k.controls.Quit}}
	const perColumn = 4
	var col []key.Binding
	for _, b := range k.buttons {
		col = append(col, b.Key)
		if len(col) == perColumn {
			cols = append(cols, col)
			col = nil
		}
	}
	if len(col) > 0 {
		cols = append(cols, col)
	}
	return cols
}

// MenuKeyMap defines keybindings for the demo picker.
type MenuKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Sessions key.Binding
	Quit     key.Binding
}

// DefaultMenuKeyMap returns the picker bindings, with vim-style j/k.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "run"),
		),
		Sessions: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "sessions"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Sessions, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Sessions, k.Quit},
	}
}
