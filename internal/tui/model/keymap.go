package model

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the result browser.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Root      key.Binding
	Detail0   key.Binding
	Detail1   key.Binding
	Detail2   key.Binding
	Copy      key.Binding
	ToggleLog key.Binding
	Help      key.Binding
	Esc       key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns a KeyMap with default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("u", "up", "k"),
			key.WithHelp("u/↑", "parent"),
		),
		Down: key.NewBinding(
			key.WithKeys("d", "down", "j"),
			key.WithHelp("d/↓", "first child"),
		),
		Left: key.NewBinding(
			key.WithKeys("l", "left"),
			key.WithHelp("l/←", "previous sibling"),
		),
		Right: key.NewBinding(
			key.WithKeys("r", "right"),
			key.WithHelp("r/→", "next sibling"),
		),
		Root: key.NewBinding(
			key.WithKeys("t", "home"),
			key.WithHelp("t", "jump to root"),
		),
		Detail0: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "status only"),
		),
		Detail1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "error types"),
		),
		Detail2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "full errors"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy details"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle log overlay"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "toggle help"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close overlay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
	}
}

// FullHelp returns bindings for the help overlay, one column per slice.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Root},
		{k.Detail0, k.Detail1, k.Detail2, k.Copy},
		{k.Help, k.ToggleLog, k.Esc, k.Quit},
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Help, k.Quit}
}
