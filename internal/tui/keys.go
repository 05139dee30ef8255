package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines keyboard shortcuts
type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Down      key.Binding
	Up        key.Binding
	Deselect  key.Binding
	Activate  key.Binding
	First     key.Binding
	Last      key.Binding
	Help      key.Binding
}

// ShortHelp implements help.KeyMap for the footer
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Activate, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap for the expanded footer
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.First, k.Last},
		{k.Activate, k.Deselect},
		{k.Quit, k.ForceQuit, k.Help},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous"),
		),
		Deselect: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "unselect"),
		),
		Activate: key.NewBinding(
			key.WithKeys("l", "right", "enter"),
			key.WithHelp("l/→/enter", "install"),
		),
		First: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}
