package stableview

import (
	"slices"
	"testing"

	"github.com/gdamore/tcell/v3"
)

func TestWordWrap(t *testing.T) {
	type tc struct {
		text  string
		width int
		want  []string
	}

	tests := map[string]tc{
		"fits":              {text: "hello", width: 10, want: []string{"hello"}},
		"breaks at space":   {text: "hello world", width: 5, want: []string{"hello", "world"}},
		"keeps short words": {text: "a b c", width: 3, want: []string{"a b", "c"}},
		"cuts long words":   {text: "abcdef", width: 4, want: []string{"abcd", "ef"}},
		"newline":           {text: "one\ntwo", width: 10, want: []string{"one", "two"}},
		"wide clusters":     {text: "日本語", width: 4, want: []string{"日本", "語"}},
		"empty":             {text: "", width: 5, want: []string{""}},
		"zero width":        {text: "abc", width: 0, want: nil},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := WordWrap(tc.text, tc.width)
			if !slices.Equal(got, tc.want) {
				t.Errorf("WordWrap(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.want)
			}
		})
	}
}

func TestStringWidth(t *testing.T) {
	type tc struct {
		text string
		want int
	}

	tests := map[string]tc{
		"ascii": {text: "abc", want: 3},
		"wide":  {text: "日本", want: 4},
		"empty": {text: "", want: 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := StringWidth(tc.text); got != tc.want {
				t.Errorf("StringWidth(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}
}

func TestTextItem_Height(t *testing.T) {
	item := NewTextItem("hello world").
		AddParagraph("second", tcell.StyleDefault.Foreground(Styles.SecondaryTextColor))

	if got := item.Height(20); got != 2 {
		t.Errorf("Height(20) = %d, want 2", got)
	}
	if got := item.Height(6); got != 3 {
		t.Errorf("Height(6) = %d, want 3", got)
	}

	item.SetBorders(BordersAll)
	if got := item.Height(8); got != 5 {
		t.Errorf("Height(8) with borders = %d, want 5", got)
	}
}
