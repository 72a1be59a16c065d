package stableview

import (
	"strings"

	"github.com/rivo/uniseg"
)

// stepState carries the grapheme parser state between calls to step.
type stepState struct {
	unisegState int
	boundaries  int
	grossLength int
}

// LineBreak reports whether a line may, or must, be broken after the last
// cluster.
func (s *stepState) LineBreak() (lineBreak, optional bool) {
	switch s.boundaries & uniseg.MaskLine {
	case uniseg.LineCanBreak:
		return true, true
	case uniseg.LineMustBreak:
		return true, false
	}
	return false, false
}

// Width returns the last cluster's width in cells.
func (s *stepState) Width() int {
	return s.boundaries >> uniseg.ShiftWidth
}

// GrossLength returns the last cluster's length in bytes.
func (s *stepState) GrossLength() int {
	return s.grossLength
}

// step returns the first grapheme cluster of str and the remainder.
func step(str string, state *stepState) (cluster, rest string, newState *stepState) {
	if state == nil {
		state = &stepState{unisegState: -1}
	}
	if str == "" {
		return "", "", state
	}

	cluster, rest, state.boundaries, state.unisegState = uniseg.StepString(str, state.unisegState)
	state.grossLength = len(cluster)
	// The end of the text is not a break opportunity unless the text itself
	// ends in a newline.
	if rest == "" && !uniseg.HasTrailingLineBreakInString(cluster) {
		state.boundaries &^= uniseg.MaskLine
	}
	return cluster, rest, state
}

// StringWidth returns the number of cells text occupies on screen.
func StringWidth(text string) int {
	width := 0
	var state *stepState
	for len(text) > 0 {
		_, text, state = step(text, state)
		width += state.Width()
	}
	return width
}

// WordWrap splits text into lines no wider than width cells. Lines break at
// the last break opportunity that fits, or mid-word when a word alone is
// wider than width. Mandatory breaks (newlines) are honored and removed.
func WordWrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var (
		lines []string
		state *stepState
		// Width and byte length of the current line.
		lineWidth, lineLen int
		// The last optional break inside the current line.
		breakLen, breakWidth int
	)
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, state = step(rest, state)
		w := state.Width()

		if lineWidth+w > width && cluster == " " {
			// Overflowing spaces stay at the end of the line and are
			// trimmed when it is cut.
			lineWidth += w
			lineLen += state.GrossLength()
			breakLen, breakWidth = lineLen, lineWidth
			continue
		}
		if lineWidth+w > width {
			cut, cutWidth := lineLen, lineWidth
			if breakWidth > 0 {
				cut, cutWidth = breakLen, breakWidth
			}
			lines = append(lines, strings.TrimRight(text[:cut], " "))
			text = text[cut:]
			lineLen -= cut
			lineWidth -= cutWidth
			breakLen, breakWidth = 0, 0
		}

		lineWidth += w
		lineLen += state.GrossLength()

		lineBreak, optional := state.LineBreak()
		switch {
		case lineBreak && optional:
			breakLen, breakWidth = lineLen, lineWidth
		case lineBreak:
			lines = append(lines, strings.TrimRight(text[:lineLen], "\n\r"))
			text = text[lineLen:]
			lineLen, lineWidth, breakLen, breakWidth = 0, 0, 0, 0
		}
	}
	if text != "" || len(lines) == 0 {
		lines = append(lines, strings.TrimRight(text, " "))
	}
	return lines
}
