package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Restart    key.Binding
	NewPassage key.Binding
	DeleteWord key.Binding
	Dismiss    key.Binding
	Quit       key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.NewPassage, k.Dismiss, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.DeleteWord}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "try again"),
		),
		NewPassage: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new text"),
		),
		DeleteWord: key.NewBinding(
			key.WithKeys("ctrl+w", "alt+backspace"),
			key.WithHelp("ctrl+w", "delete word"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close results"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
