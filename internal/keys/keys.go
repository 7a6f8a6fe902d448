// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the editor.
type KeyMap struct {
	// Focus
	Up   key.Binding
	Down key.Binding

	// Controls
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Toggle key.Binding
	Escape key.Binding
	Docs   key.Binding

	// Document
	Save   key.Binding
	Reload key.Binding

	// General
	Help key.Binding
	Logs key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up", "shift+tab"),
			key.WithHelp("k/↑", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down", "tab"),
			key.WithHelp("j/↓", "next field"),
		),

		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous editor"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next editor"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit / choose"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Docs: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "open docs"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),

		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "debug logs"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Right, k.Enter, k.Save, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Left, k.Right, k.Enter, k.Toggle, k.Escape, k.Docs},
		{k.Save, k.Reload, k.Help, k.Logs, k.Quit},
	}
}
