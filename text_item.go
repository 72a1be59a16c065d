package stableview

import (
	"github.com/gdamore/tcell/v3"
)

// TextItem is a list row made of word-wrapped paragraphs, each with its own
// style. Its height is the number of wrapped lines at the given width.
type TextItem struct {
	*Box
	paragraphs []paragraph
}

type paragraph struct {
	text  string
	style tcell.Style
}

// NewTextItem returns a row with a single paragraph in the primary text
// color.
func NewTextItem(text string) *TextItem {
	return NewTextItemStyled().AddParagraph(text, tcell.StyleDefault.Foreground(Styles.PrimaryTextColor))
}

// NewTextItemStyled returns an empty row.
func NewTextItemStyled() *TextItem {
	return &TextItem{Box: NewBox()}
}

// AddParagraph appends a paragraph. Newlines inside text start new lines.
func (t *TextItem) AddParagraph(text string, style tcell.Style) *TextItem {
	t.paragraphs = append(t.paragraphs, paragraph{text: text, style: style})
	return t
}

// Height returns the number of lines the row needs at the given width.
func (t *TextItem) Height(width int) int {
	innerWidth := width - t.horizontalChrome()
	lines := 0
	for _, p := range t.paragraphs {
		lines += len(WordWrap(p.text, innerWidth))
	}
	return max(lines+t.verticalChrome(), 1)
}

// Draw draws the row onto the screen.
func (t *TextItem) Draw(screen tcell.Screen) {
	t.DrawForSubclass(screen, t)

	x, y, width, height := t.GetInnerRect()
	row := 0
	for _, p := range t.paragraphs {
		for _, line := range WordWrap(p.text, width) {
			if row >= height {
				return
			}
			PrintWithStyle(screen, line, x, y+row, width, AlignmentLeft, p.style)
			row++
		}
	}
}

func (t *TextItem) horizontalChrome() int {
	n := t.paddingLeft + t.paddingRight
	if t.borders.Has(BordersLeft) {
		n++
	}
	if t.borders.Has(BordersRight) {
		n++
	}
	return n
}

// verticalChrome returns the lines taken by borders, title, footer and
// padding.
func (t *TextItem) verticalChrome() int {
	n := t.paddingTop + t.paddingBottom
	if t.title != "" || t.borders.Has(BordersTop) {
		n++
	}
	if t.footer != "" || t.borders.Has(BordersBottom) {
		n++
	}
	return n
}
