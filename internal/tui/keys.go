package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding. Which ones apply depends on whether a
// session is running.
type keyMap struct {
	Start   key.Binding
	Reset   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Quit    key.Binding
	Cancel  key.Binding
	RunQuit key.Binding
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev field"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space/p", "cancel"),
	),
	RunQuit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// editKeys is the help.KeyMap shown while configuring.
type editKeys struct{ keyMap }

func (k editKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Next, k.Reset, k.Quit}
}

func (k editKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Start, k.Reset}, {k.Next, k.Prev}, {k.Quit}}
}

// runKeys is the help.KeyMap shown while counting down.
type runKeys struct{ keyMap }

func (k runKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel, k.RunQuit}
}

func (k runKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
