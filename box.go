package stableview

import (
	"github.com/gdamore/tcell/v3"
)

// Box implements the Primitive interface with an empty background and optional
// elements such as a border, a title and a footer. Box itself does not hold
// any content but serves as the base of all other primitives, which draw their
// content inside the box's inner rectangle.
type Box struct {
	// The position of the rect.
	x, y, width, height int

	// Border padding.
	paddingTop, paddingBottom, paddingLeft, paddingRight int

	backgroundColor tcell.Color

	borders          Borders
	borderSet        BorderSet
	borderStyle      tcell.Style
	focusBorderStyle tcell.Style

	title          string
	titleStyle     tcell.Style
	titleAlignment Alignment

	footer          string
	footerStyle     tcell.Style
	footerAlignment Alignment

	hasFocus bool

	// Optional callbacks invoked when the primitive receives or loses focus.
	focus, blur func()
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	return &Box{
		backgroundColor: Styles.PrimitiveBackgroundColor,

		borderSet:        BorderSetRound(),
		borderStyle:      tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		focusBorderStyle: tcell.StyleDefault.Foreground(Styles.FocusBorderColor).Background(Styles.PrimitiveBackgroundColor),

		titleStyle:      tcell.StyleDefault.Foreground(Styles.TitleColor),
		titleAlignment:  AlignmentLeft,
		footerStyle:     tcell.StyleDefault.Foreground(Styles.TitleColor),
		footerAlignment: AlignmentRight,
	}
}

// SetBorderPadding sets the size of the padding inside the border.
func (b *Box) SetBorderPadding(top, bottom, left, right int) *Box {
	b.paddingTop, b.paddingBottom, b.paddingLeft, b.paddingRight = top, bottom, left, right
	return b
}

// GetRect returns the current position of the rectangle, x, y, width, and
// height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// SetRect sets a new position of the primitive.
func (b *Box) SetRect(x, y, width, height int) {
	b.x, b.y, b.width, b.height = x, y, width, height
}

// GetInnerRect returns the position of the inner rectangle (x, y, width,
// height), without the border and without any padding. Width and height values
// will clamp to 0 and thus never be negative.
func (b *Box) GetInnerRect() (int, int, int, int) {
	x, y, width, height := b.GetRect()

	if b.title != "" || b.borders.Has(BordersTop) {
		y++
		height--
	}
	if b.footer != "" || b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x++
		width--
	}
	if b.borders.Has(BordersRight) {
		width--
	}

	x += b.paddingLeft
	y += b.paddingTop
	width -= b.paddingLeft + b.paddingRight
	height -= b.paddingTop + b.paddingBottom
	return x, y, max(width, 0), max(height, 0)
}

// InRect returns true if the given coordinate is within the bounds of the box's
// rectangle.
func (b *Box) InRect(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// InputHandler ignores all keys.
func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// MouseHandler focuses the box when it is clicked.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// SetBackgroundColor sets the box's background color.
func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	b.backgroundColor = color
	b.borderStyle = b.borderStyle.Background(color)
	b.focusBorderStyle = b.focusBorderStyle.Background(color)
	return b
}

// SetBorders sets which borders to draw.
func (b *Box) SetBorders(flag Borders) *Box {
	b.borders = flag
	return b
}

// SetBorderSet sets the glyphs used for the border.
func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	b.borderSet = borderSet
	return b
}

// SetBorderStyle sets the box's border style when it does not have focus.
func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	b.borderStyle = style
	return b
}

// SetFocusBorderStyle sets the box's border style when it has focus.
func (b *Box) SetFocusBorderStyle(style tcell.Style) *Box {
	b.focusBorderStyle = style
	return b
}

// GetTitle returns the box's current title.
func (b *Box) GetTitle() string {
	return b.title
}

// SetTitle sets the box's title.
func (b *Box) SetTitle(title string) *Box {
	b.title = title
	return b
}

// SetTitleStyle sets the style of the title.
func (b *Box) SetTitleStyle(style tcell.Style) *Box {
	b.titleStyle = style
	return b
}

// SetTitleAlignment sets the alignment of the title.
func (b *Box) SetTitleAlignment(alignment Alignment) *Box {
	b.titleAlignment = alignment
	return b
}

// GetFooter returns the box's current footer.
func (b *Box) GetFooter() string {
	return b.footer
}

// SetFooter sets the box's footer.
func (b *Box) SetFooter(footer string) *Box {
	b.footer = footer
	return b
}

// SetFooterStyle sets the style of the footer.
func (b *Box) SetFooterStyle(style tcell.Style) *Box {
	b.footerStyle = style
	return b
}

// Draw draws this primitive onto the screen.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws this box on behalf of p, which embeds it. The frame
// uses p's focus state.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	fill(screen, b.x, b.y, b.width, b.height, tcell.StyleDefault.Background(b.backgroundColor))

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		b.drawBorder(screen, p.HasFocus())
	}

	if b.width >= 4 {
		b.drawLabel(screen, b.title, b.y, b.titleAlignment, b.titleStyle)
		b.drawLabel(screen, b.footer, b.y+b.height-1, b.footerAlignment, b.footerStyle)
	}
}

func (b *Box) drawBorder(screen tcell.Screen, focused bool) {
	style := b.borderStyle
	if focused {
		style = b.focusBorderStyle
	}
	set := b.borderSet
	left, right := b.x, b.x+b.width-1
	top, bottom := b.y, b.y+b.height-1

	if b.borders.Has(BordersTop) {
		for x := left + 1; x < right; x++ {
			screen.Put(x, top, set.Top, style)
		}
	}
	if b.borders.Has(BordersBottom) {
		for x := left + 1; x < right; x++ {
			screen.Put(x, bottom, set.Bottom, style)
		}
	}
	if b.borders.Has(BordersLeft) {
		for y := top + 1; y < bottom; y++ {
			screen.Put(left, y, set.Left, style)
		}
	}
	if b.borders.Has(BordersRight) {
		for y := top + 1; y < bottom; y++ {
			screen.Put(right, y, set.Right, style)
		}
	}

	corners := []struct {
		edges Borders
		x, y  int
		glyph string
	}{
		{BordersTop | BordersLeft, left, top, set.TopLeft},
		{BordersTop | BordersRight, right, top, set.TopRight},
		{BordersBottom | BordersLeft, left, bottom, set.BottomLeft},
		{BordersBottom | BordersRight, right, bottom, set.BottomRight},
	}
	for _, c := range corners {
		if b.borders.Has(c.edges) {
			screen.Put(c.x, c.y, c.glyph, style)
		}
	}
}

// drawLabel prints a title or footer on row y between the corners, ending
// in an ellipsis when it does not fit.
func (b *Box) drawLabel(screen tcell.Screen, text string, y int, alignment Alignment, style tcell.Style) {
	if text == "" {
		return
	}
	x, width := b.x+1, b.width-2
	printed, _ := PrintWithStyle(screen, text, x, y, width, alignment, style)
	if printed > 0 && printed < len(text) {
		ellipsisX := x + width - 1
		if alignment == AlignmentRight {
			ellipsisX = x
		}
		PrintWithStyle(screen, SemigraphicsHorizontalEllipsis, ellipsisX, y, 1, AlignmentLeft, style)
	}
}

// SetFocusFunc sets a callback function which is invoked when this primitive
// receives focus. Set to nil to remove the callback function.
func (b *Box) SetFocusFunc(callback func()) *Box {
	b.focus = callback
	return b
}

// SetBlurFunc sets a callback function which is invoked when this primitive
// loses focus. Set to nil to remove the callback function.
func (b *Box) SetBlurFunc(callback func()) *Box {
	b.blur = callback
	return b
}

// Focus is called when this primitive directly receives focus.
func (b *Box) Focus(delegate func(p Primitive)) {
	b.hasFocus = true
	if b.focus != nil {
		b.focus()
	}
}

// Blur is called when this primitive directly loses focus.
func (b *Box) Blur() {
	b.hasFocus = false
	if b.blur != nil {
		b.blur()
	}
}

// HasFocus returns whether or not this primitive has focus.
func (b *Box) HasFocus() bool {
	return b.hasFocus
}

var _ Primitive = (*Box)(nil)
