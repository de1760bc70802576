package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the agent list.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Available key.Binding
	Busy      key.Binding
	Break     key.Binding
	Export    key.Binding
	Import    key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l", "enter"),
		key.WithHelp("→/l", "next status"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous status"),
	),
	Available: key.NewBinding(
		key.WithKeys("1", "a"),
		key.WithHelp("1", "available"),
	),
	Busy: key.NewBinding(
		key.WithKeys("2", "b"),
		key.WithHelp("2", "busy"),
	),
	Break: key.NewBinding(
		key.WithKeys("3", "p"),
		key.WithHelp("3", "break"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Close: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("Q", "ctrl+c"),
		key.WithHelp("Q", "quit app"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Next, k.Available, k.Busy, k.Break, k.Export, k.Import, k.Help, k.Close}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Available, k.Busy, k.Break},
		{k.Export, k.Import},
		{k.Help, k.Close, k.Quit},
	}
}
