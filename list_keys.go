package stableview

import "github.com/xqrs/stableview/keybind"

// ListKeys are the keybinds of an AnchoredList.
type ListKeys struct {
	Up       keybind.Keybind
	Down     keybind.Keybind
	PageUp   keybind.Keybind
	PageDown keybind.Keybind
	Top      keybind.Keybind
	Bottom   keybind.Keybind
	Refresh  keybind.Keybind
}

// DefaultListKeys returns arrow and vi style bindings.
func DefaultListKeys() ListKeys {
	return ListKeys{
		Up: keybind.NewKeybind(
			keybind.WithKeys("up", "k"),
			keybind.WithHelp("↑/k", "up"),
		),
		Down: keybind.NewKeybind(
			keybind.WithKeys("down", "j"),
			keybind.WithHelp("↓/j", "down"),
		),
		PageUp: keybind.NewKeybind(
			keybind.WithKeys("pgup", "ctrl+b"),
			keybind.WithHelp("pgup", "page up"),
		),
		PageDown: keybind.NewKeybind(
			keybind.WithKeys("pgdn", "ctrl+f"),
			keybind.WithHelp("pgdn", "page down"),
		),
		Top: keybind.NewKeybind(
			keybind.WithKeys("home", "g"),
			keybind.WithHelp("home", "top"),
		),
		Bottom: keybind.NewKeybind(
			keybind.WithKeys("end", "G"),
			keybind.WithHelp("end", "bottom"),
		),
		Refresh: keybind.NewKeybind(
			keybind.WithKeys("ctrl+r"),
			keybind.WithHelp("ctrl+r", "refresh"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k ListKeys) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Up, k.Down, k.PageDown, k.Top, k.Bottom, k.Refresh}
}
