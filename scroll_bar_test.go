package stableview

import "testing"

func TestComputeThumb(t *testing.T) {
	type tc struct {
		cells, content, viewport, offset int
		want                             thumb
	}

	tests := map[string]tc{
		"top":            {cells: 4, content: 8, viewport: 4, offset: 0, want: thumb{start: 0, length: 16}},
		"bottom":         {cells: 4, content: 8, viewport: 4, offset: 4, want: thumb{start: 16, length: 16}},
		"offset clamped": {cells: 4, content: 8, viewport: 4, offset: 9, want: thumb{start: 16, length: 16}},
		"content fits":   {cells: 4, content: 3, viewport: 4, offset: 0, want: thumb{start: 0, length: 32}},
		"minimum length": {cells: 2, content: 100, viewport: 1, offset: 99, want: thumb{start: 8, length: 8}},
		"no cells":       {cells: 0, content: 10, viewport: 2, offset: 0, want: thumb{}},
		"overscrolled":   {cells: 4, content: 8, viewport: 4, offset: -3, want: thumb{start: 0, length: 16}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := computeThumb(tc.cells, tc.content, tc.viewport, tc.offset); got != tc.want {
				t.Errorf("computeThumb(%d, %d, %d, %d) = %+v, want %+v", tc.cells, tc.content, tc.viewport, tc.offset, got, tc.want)
			}
		})
	}
}

func TestThumb_Coverage(t *testing.T) {
	th := thumb{start: 4, length: 8}

	for cell, want := range [][2]int{{4, 4}, {0, 4}, {0, 0}} {
		start, length := th.coverage(cell)
		if start != want[0] || length != want[1] {
			t.Errorf("coverage(%d) = %d, %d, want %d, %d", cell, start, length, want[0], want[1])
		}
	}
}

func TestScrollBar_AutoHide(t *testing.T) {
	screen := newTestScreen(1, 4)
	bar := NewScrollBar().SetLengths(ScrollLengths{ContentLen: 3, ViewportLen: 4})
	bar.SetRect(0, 0, 1, 4)
	bar.Draw(screen)

	if len(screen.cells) != 0 {
		t.Errorf("auto-hidden bar drew %d cells", len(screen.cells))
	}

	bar.SetLengths(ScrollLengths{ContentLen: 8, ViewportLen: 4})
	bar.Draw(screen)
	if len(screen.cells) != 4 {
		t.Errorf("bar drew %d cells, want 4", len(screen.cells))
	}
}
