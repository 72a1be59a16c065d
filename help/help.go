// Package help draws a one-line key help bar with an optional status text
// aligned to the right.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/stableview"
	"github.com/xqrs/stableview/keybind"
)

type KeyMap interface {
	// ShortHelp returns the keybinds shown in the bar, in order.
	ShortHelp() []keybind.Keybind
}

type Help struct {
	*stableview.Box
	Styles Styles

	keyMap    KeyMap
	status    string
	separator string
	ellipsis  string
}

func New() *Help {
	return &Help{
		Box:       stableview.NewBox(),
		Styles:    DefaultStyles(),
		separator: " • ",
		ellipsis:  "…",
	}
}

// SetKeyMap sets the key map shown by the bar.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	return h
}

// SetStatus sets the text drawn at the right edge.
func (h *Help) SetStatus(status string) *Help {
	h.status = status
	return h
}

// Status returns the text drawn at the right edge.
func (h *Help) Status() string {
	return h.status
}

// SetSeparator sets the separator drawn between entries.
func (h *Help) SetSeparator(separator string) *Help {
	h.separator = separator
	return h
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)

	x, y, width, height := h.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	// The status takes precedence; help entries use what is left.
	statusWidth := 0
	if h.status != "" {
		_, statusWidth = stableview.PrintWithStyle(screen, h.status, x, y, width, stableview.AlignmentRight, h.Styles.StatusStyle)
	}
	available := width - statusWidth
	if statusWidth > 0 {
		available--
	}
	if h.keyMap == nil || available <= 0 {
		return
	}

	cursor := x
	for _, s := range h.Segments(available) {
		_, printed := stableview.PrintWithStyle(screen, s.Text, cursor, y, x+available-cursor, stableview.AlignmentLeft, s.Style)
		cursor += printed
	}
}

// Segment is a styled piece of the bar.
type Segment struct {
	Text  string
	Style tcell.Style
}

// Segments lays out the enabled keybinds of the key map into at most
// maxWidth cells. Entries that do not fit are replaced by an ellipsis.
func (h *Help) Segments(maxWidth int) []Segment {
	if h.keyMap == nil {
		return nil
	}

	var out []Segment
	width := 0
	for _, kb := range h.keyMap.ShortHelp() {
		if !kb.Enabled() {
			continue
		}
		entry := h.entry(kb.Help())
		if len(entry) == 0 {
			continue
		}
		if len(out) > 0 {
			entry = append([]Segment{{Text: h.separator, Style: h.Styles.SeparatorStyle}}, entry...)
		}
		entryWidth := segmentsWidth(entry)
		if maxWidth > 0 && width+entryWidth > maxWidth {
			tail := Segment{Text: " " + h.ellipsis, Style: h.Styles.EllipsisStyle}
			if width+stableview.StringWidth(tail.Text) <= maxWidth {
				out = append(out, tail)
			}
			break
		}
		out = append(out, entry...)
		width += entryWidth
	}
	return out
}

// String renders the segments without styles, for tests and logs.
func (h *Help) String() string {
	var b strings.Builder
	for _, s := range h.Segments(0) {
		b.WriteString(s.Text)
	}
	return b.String()
}

func (h *Help) entry(help keybind.Help) []Segment {
	switch {
	case help.Key == "" && help.Desc == "":
		return nil
	case help.Key == "":
		return []Segment{{Text: help.Desc, Style: h.Styles.DescStyle}}
	case help.Desc == "":
		return []Segment{{Text: help.Key, Style: h.Styles.KeyStyle}}
	default:
		return []Segment{
			{Text: help.Key, Style: h.Styles.KeyStyle},
			{Text: " " + help.Desc, Style: h.Styles.DescStyle},
		}
	}
}

func segmentsWidth(segments []Segment) int {
	width := 0
	for _, s := range segments {
		width += stableview.StringWidth(s.Text)
	}
	return width
}
