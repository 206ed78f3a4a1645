package demo

import (
	"github.com/charmbracelet/bubbles/v2/key"

	"github.com/tujuhre12/vlist/internal/tui/list"
)

type KeyMap struct {
	Quit,
	Expand,
	Jump,
	Help key.Binding

	List list.KeyMap
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Expand: key.NewBinding(
			key.WithKeys("x", "enter"),
			key.WithHelp("x", "expand"),
		),
		Jump: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "random jump"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		List: list.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return append(k.List.ShortHelp(), k.Expand, k.Jump, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.List.FullHelp(), []key.Binding{k.Expand, k.Jump, k.Help, k.Quit})
}
