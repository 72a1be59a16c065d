package stableview

import (
	"strings"

	"github.com/gdamore/tcell/v3"
)

// testScreen records cell contents. Only the methods used by drawing code are
// implemented; everything else panics through the nil embedded interface.
type testScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]testCell
}

type testCell struct {
	str   string
	style tcell.Style
}

func newTestScreen(width, height int) *testScreen {
	return &testScreen{width: width, height: height, cells: make(map[[2]int]testCell)}
}

func (s *testScreen) Size() (int, int) {
	return s.width, s.height
}

func (s *testScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return str, 0
	}
	s.cells[[2]int{x, y}] = testCell{str: str, style: style}
	return "", 1
}

func (s *testScreen) Get(x int, y int) (string, tcell.Style, int) {
	c, ok := s.cells[[2]int{x, y}]
	if !ok {
		return " ", tcell.StyleDefault, 1
	}
	return c.str, c.style, 1
}

func (s *testScreen) HideCursor() {}

// line returns row y as a string, one cluster per cell.
func (s *testScreen) line(y int) string {
	var b strings.Builder
	for x := range s.width {
		str, _, _ := s.Get(x, y)
		b.WriteString(str)
	}
	return b.String()
}
