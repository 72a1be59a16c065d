package stableview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// clippedScreen drops everything drawn outside a rectangle. Rows of a list
// are drawn through it so partially visible rows cannot paint over the frame.
type clippedScreen struct {
	tcell.Screen
	x, y, width, height int
}

func newClippedScreen(screen tcell.Screen, x, y, width, height int) *clippedScreen {
	return &clippedScreen{Screen: screen, x: x, y: y, width: width, height: height}
}

func (s *clippedScreen) inBounds(x, y int) bool {
	return x >= s.x && x < s.x+s.width && y >= s.y && y < s.y+s.height
}

func (s *clippedScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if !s.inBounds(x, y) {
		return str, 0
	}
	return s.Screen.Put(x, y, str, style)
}

func (s *clippedScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, tcell.StyleDefault)
}

func (s *clippedScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	if y < s.y || y >= s.y+s.height {
		return
	}
	gr := uniseg.NewGraphemes(str)
	for gr.Next() && x < s.x+s.width {
		cluster := gr.Str()
		width := max(uniseg.StringWidth(cluster), 1)
		if x >= s.x && x+width <= s.x+s.width {
			s.Screen.Put(x, y, cluster, style)
		}
		x += width
	}
}

func (s *clippedScreen) ShowCursor(x int, y int) {
	if !s.inBounds(x, y) {
		s.Screen.HideCursor()
		return
	}
	s.Screen.ShowCursor(x, y)
}
