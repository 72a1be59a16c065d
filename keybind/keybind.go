// Package keybind matches tcell key events against configurable key names
// such as "ctrl+r", "pgdn" or "k".
package keybind

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v3"
)

// Keybind is a set of keys that trigger one action, plus the text shown for
// it in help bars.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

// Help is the short description of a keybind.
type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

// NewKeybind returns a keybind configured by options.
func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

// WithKeys sets the keys, which are normalized.
func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.SetKeys(keys...)
	}
}

// WithHelp sets the help text.
func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

// WithDisabled creates the keybind disabled.
func WithDisabled() Option {
	return func(k *Keybind) {
		k.disabled = true
	}
}

// Keys returns the normalized keys.
func (k Keybind) Keys() []string {
	return k.keys
}

// SetKeys replaces the keys. Keys that normalize to nothing are dropped.
func (k *Keybind) SetKeys(keys ...string) {
	k.keys = nil
	for _, key := range keys {
		if key = Normalize(key); key != "" && !slices.Contains(k.keys, key) {
			k.keys = append(k.keys, key)
		}
	}
}

func (k Keybind) Help() Help {
	return k.help
}

// Enabled reports whether the keybind has keys and is not disabled.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

// SetEnabled enables or disables the keybind.
func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event triggers any of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	name := EventName(event)
	for _, kb := range keybinds {
		if kb.Enabled() && slices.Contains(kb.keys, name) {
			return true
		}
	}
	return false
}

// Normalize brings a key name into canonical form: lower-case modifiers in
// ctrl, alt, shift, meta order joined with "+", followed by the key. It
// accepts common aliases such as "escape", "pagedown" or "ctrl-r". Single
// character keys keep their case unless a modifier is present.
func Normalize(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(key), "ctrl-") && len(key) > len("ctrl-") {
		key = "ctrl+" + key[len("ctrl-"):]
	}

	var mods modifiers
	primary := ""
	for _, part := range strings.Split(key, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "":
		case "ctrl", "control":
			mods.ctrl = true
		case "alt", "option":
			mods.alt = true
		case "shift":
			mods.shift = true
		case "meta", "cmd":
			mods.meta = true
		default:
			primary = primaryName(part)
		}
	}
	if primary == "" {
		// A lone "+" names the plus key.
		if strings.TrimSpace(key) == "+" {
			return "+"
		}
		return ""
	}
	if primary == "backtab" {
		mods.shift = true
		primary = "tab"
	}
	if !mods.any() {
		return primary
	}
	return mods.prefix() + strings.ToLower(primary)
}

// EventName returns the canonical name of a key event, comparable with the
// output of Normalize.
func EventName(event *tcell.EventKey) string {
	if event == nil {
		return ""
	}

	key := event.Key()
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	}

	primary := keyNames[key]
	if primary == "" && key == tcell.KeyRune {
		primary = event.Str()
	}
	if primary == "" {
		return Normalize(event.Name())
	}

	m := event.Modifiers()
	mods := modifiers{
		ctrl:  m&tcell.ModCtrl != 0,
		alt:   m&tcell.ModAlt != 0,
		shift: m&tcell.ModShift != 0 && key != tcell.KeyRune,
		meta:  m&tcell.ModMeta != 0,
	}
	if key == tcell.KeyBacktab {
		mods.shift = true
	}
	if !mods.any() {
		return primary
	}
	return mods.prefix() + strings.ToLower(primary)
}

type modifiers struct {
	ctrl, alt, shift, meta bool
}

func (m modifiers) any() bool {
	return m.ctrl || m.alt || m.shift || m.meta
}

func (m modifiers) prefix() string {
	var b strings.Builder
	for _, mod := range []struct {
		set  bool
		name string
	}{{m.ctrl, "ctrl+"}, {m.alt, "alt+"}, {m.shift, "shift+"}, {m.meta, "meta+"}} {
		if mod.set {
			b.WriteString(mod.name)
		}
	}
	return b.String()
}

func primaryName(key string) string {
	if strings.HasPrefix(key, "Rune[") && strings.HasSuffix(key, "]") && len(key) > len("Rune[]") {
		return key[len("Rune[") : len(key)-1]
	}
	if len([]rune(key)) == 1 {
		return key
	}

	lower := strings.ToLower(key)
	if alias, ok := aliases[lower]; ok {
		return alias
	}
	return lower
}

var aliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
	"del":      "delete",
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}
