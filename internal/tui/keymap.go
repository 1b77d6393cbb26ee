package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the review screen's keybindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Accept   key.Binding
	Category key.Binding
	Subtype  key.Binding
	Material key.Binding
	Select   key.Binding
	Back     key.Binding
	Done     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Accept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accept"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		Subtype: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "subtype"),
		),
		Material: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "material"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Done: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "done, accept the rest"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "abort"),
		),
	}
}
