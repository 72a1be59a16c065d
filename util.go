package stableview

import (
	"github.com/gdamore/tcell/v3"
)

// Alignment positions a line of text inside the space reserved for it.
type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// Print prints text onto the screen into the given box at (x,y,maxWidth,1),
// not exceeding that box. The existing background is kept.
//
// Returns the number of bytes printed, counted from the first printed
// cluster, and the width they used.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, fg tcell.Color) (int, int) {
	return PrintWithStyle(screen, text, x, y, maxWidth, alignment, tcell.StyleDefault.Foreground(fg))
}

// PrintWithStyle works like [Print] but takes a full style. A default
// background in style keeps whatever background is already on screen.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	_, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0
	}

	// Drop clusters from the left until the text fits, as much as the
	// alignment requires.
	width := StringWidth(text)
	var state *stepState
	switch alignment {
	case AlignmentRight:
		for width > maxWidth && len(text) > 0 {
			_, text, state = step(text, state)
			width -= state.Width()
		}
		x += maxWidth - width
	case AlignmentCenter:
		overflow := (width - maxWidth) / 2
		for overflow > 0 && len(text) > 0 {
			_, text, state = step(text, state)
			overflow -= state.Width()
			width -= state.Width()
		}
		if width < maxWidth {
			x += (maxWidth - width) / 2
		}
	}

	printed, printedWidth := 0, 0
	limit := x + min(width, maxWidth)
	state = nil
	for len(text) > 0 && x < limit {
		var cluster string
		cluster, text, state = step(text, state)
		w := state.Width()
		if x+w > limit {
			break
		}
		if w > 0 {
			cellStyle := style
			if style.GetBackground() == tcell.ColorDefault {
				_, existing, _ := screen.Get(x, y)
				cellStyle = cellStyle.Background(existing.GetBackground())
			}
			// Blank the trailing cells of wide clusters first; the cluster
			// itself is put last so it owns them.
			for i := w - 1; i > 0; i-- {
				screen.Put(x+i, y, " ", cellStyle)
			}
			screen.Put(x, y, cluster, cellStyle)
		}
		x += w
		printed += state.GrossLength()
		printedWidth += w
	}
	return printed, printedWidth
}

// fill paints a rectangle with blanks.
func fill(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.Put(col, row, " ", style)
		}
	}
}
