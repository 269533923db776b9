package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Push key.Binding
	Copy key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Push: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "push a message"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy newest message"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Bindings returns the bindings in display order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Push, k.Copy, k.Quit}
}
