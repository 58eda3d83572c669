package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the paramclip TUI.
type KeyMap struct {
	Copy key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Copy: key.NewBinding(
		key.WithKeys("c", "y", "enter"),
		key.WithHelp("c/y/enter", "copy"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "h"),
		key.WithHelp("?", "how to use"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Copy, k.Help, k.Quit}}
}
