package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the sheet's key bindings.
type KeyMap struct {
	DragUp   key.Binding
	DragDown key.Binding
	Release  key.Binding
	Swipe    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Action   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		DragUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "drag up"),
		),
		DragDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "drag down"),
		),
		Release: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "release drag"),
		),
		Swipe: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "swipe to other state"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup/b", "scroll content up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn/f", "scroll content down"),
		),
		Action: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "action"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle this help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Sections groups bindings for the help overlay.
func (k KeyMap) Sections() []HelpSection {
	return []HelpSection{
		{Title: "DRAG", Bindings: []key.Binding{k.DragUp, k.DragDown, k.Release, k.Swipe}},
		{Title: "CONTENT", Bindings: []key.Binding{k.PageUp, k.PageDown, k.Action}},
		{Title: "VIEW", Bindings: []key.Binding{k.Help, k.Quit}},
	}
}
