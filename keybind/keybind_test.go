package keybind

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	type tc struct {
		key  string
		want string
	}

	tests := map[string]tc{
		"rune":            {key: "k", want: "k"},
		"upper rune":      {key: "G", want: "G"},
		"ctrl":            {key: "Ctrl+R", want: "ctrl+r"},
		"ctrl dash":       {key: "ctrl-r", want: "ctrl+r"},
		"modifier order":  {key: "shift+alt+x", want: "alt+shift+x"},
		"alias":           {key: "PageDown", want: "pgdn"},
		"escape":          {key: "Escape", want: "esc"},
		"backtab":         {key: "backtab", want: "shift+tab"},
		"tcell rune name": {key: "Rune[q]", want: "q"},
		"plus":            {key: "+", want: "+"},
		"blank":           {key: "  ", want: ""},
		"modifier only":   {key: "ctrl+", want: ""},
		"padded":          {key: " down ", want: "down"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Normalize(tc.key); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}

func TestKeybind(t *testing.T) {
	kb := NewKeybind(
		WithKeys("Ctrl+R", "ctrl-r", "", "F5"),
		WithHelp("ctrl+r", "refresh"),
	)

	if want := []string{"ctrl+r", "f5"}; !slices.Equal(kb.Keys(), want) {
		t.Errorf("Keys() = %q, want %q", kb.Keys(), want)
	}
	if got := kb.Help(); got != (Help{Key: "ctrl+r", Desc: "refresh"}) {
		t.Errorf("Help() = %+v", got)
	}
	if !kb.Enabled() {
		t.Error("Enabled() = false")
	}

	kb.SetEnabled(false)
	if kb.Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}

	if NewKeybind().Enabled() {
		t.Error("keybind without keys is enabled")
	}
	if NewKeybind(WithKeys("q"), WithDisabled()).Enabled() {
		t.Error("WithDisabled keybind is enabled")
	}
}

func TestKeybind_SetKeysDoesNotAlias(t *testing.T) {
	a := NewKeybind(WithKeys("a", "b"))
	b := a
	b.SetKeys("c")

	if want := []string{"a", "b"}; !slices.Equal(a.Keys(), want) {
		t.Errorf("original Keys() = %q, want %q", a.Keys(), want)
	}
}

func TestMatches_NilEvent(t *testing.T) {
	if Matches(nil, NewKeybind(WithKeys("q"))) {
		t.Error("Matches(nil) = true")
	}
}
