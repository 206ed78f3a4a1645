package list

import (
	"github.com/charmbracelet/bubbles/v2/key"
)

// KeyMap holds the scroll bindings of a list.
type KeyMap struct {
	LineDown,
	LineUp,
	NextItem,
	PrevItem,
	HalfPageDown,
	HalfPageUp,
	PageDown,
	PageUp,
	Top,
	Bottom key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		LineDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		LineUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		NextItem: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("shift+↓/J", "next item"),
		),
		PrevItem: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("shift+↑/K", "previous item"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("d", "ctrl+d"),
			key.WithHelp("d", "½ page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("u", "ctrl+u"),
			key.WithHelp("u", "½ page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f", "space"),
			key.WithHelp("f/pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("b/pgup", "page up"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "bottom"),
		),
	}
}

// SetEnabled turns every binding on or off.
func (k *KeyMap) SetEnabled(enabled bool) {
	for _, b := range k.bindings() {
		b.SetEnabled(enabled)
	}
}

func (k *KeyMap) bindings() []*key.Binding {
	return []*key.Binding{
		&k.LineDown, &k.LineUp,
		&k.NextItem, &k.PrevItem,
		&k.HalfPageDown, &k.HalfPageUp,
		&k.PageDown, &k.PageUp,
		&k.Top, &k.Bottom,
	}
}

// FullHelp implements help.KeyMap. Bindings are grouped by how far they
// move.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LineDown, k.LineUp, k.NextItem, k.PrevItem},
		{k.HalfPageDown, k.HalfPageUp, k.PageDown, k.PageUp},
		{k.Top, k.Bottom},
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LineDown, k.LineUp, k.NextItem, k.Top, k.Bottom}
}
