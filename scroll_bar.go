package stableview

import "github.com/gdamore/tcell/v3"

// ScrollLengths bundles content and viewport lengths in lines.
type ScrollLengths struct {
	ContentLen  int
	ViewportLen int
}

// subcell is the number of thumb steps per cell.
const subcell = 8

// GlyphSet defines the track and the fractional thumb glyphs.
type GlyphSet struct {
	Track string

	// ThumbLower[i] fills the lower i+1 eighths of a cell, ThumbUpper[i]
	// the upper i+1 eighths.
	ThumbLower [subcell]string
	ThumbUpper [subcell]string
}

// MinimalGlyphSet returns a set with an invisible track.
func MinimalGlyphSet() GlyphSet {
	g := UnicodeGlyphSet()
	g.Track = " "
	return g
}

// UnicodeGlyphSet returns a set made of block elements only, which every
// terminal font carries. Upper thumb ends are approximated.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      BoxDrawingsLightVertical,
		ThumbLower: [subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbUpper: [subcell]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},
	}
}

// ScrollBar renders a vertical scroll indicator with 1/8 cell resolution.
// It only displays a position; AnchoredList feeds it lengths and an offset
// on every draw.
type ScrollBar struct {
	*Box

	autoHide    bool
	contentLen  int
	viewportLen int
	offset      int

	trackStyle tcell.Style
	thumbStyle tcell.Style
	glyphSet   GlyphSet
}

// NewScrollBar returns a new vertical scroll bar.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		autoHide:   true,
		trackStyle: tcell.StyleDefault.Dim(true),
		thumbStyle: tcell.StyleDefault,
		glyphSet:   MinimalGlyphSet(),
	}
}

// SetLengths sets content and viewport lengths.
func (s *ScrollBar) SetLengths(lengths ScrollLengths) *ScrollBar {
	s.contentLen = max(lengths.ContentLen, 0)
	s.viewportLen = max(lengths.ViewportLen, 0)
	return s
}

// SetOffset sets the offset of the viewport into the content.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	s.offset = max(offset, 0)
	return s
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphSet = g
	return s
}

// SetAutoHide controls whether the bar is hidden when everything fits.
func (s *ScrollBar) SetAutoHide(autoHide bool) *ScrollBar {
	s.autoHide = autoHide
	return s
}

// SetThumbStyle sets the thumb style.
func (s *ScrollBar) SetThumbStyle(style tcell.Style) *ScrollBar {
	s.thumbStyle = style
	return s
}

// SetTrackStyle sets the track style.
func (s *ScrollBar) SetTrackStyle(style tcell.Style) *ScrollBar {
	s.trackStyle = style
	return s
}

// thumb is the thumb's extent in subcell units.
type thumb struct {
	start, length int
}

// computeThumb sizes the thumb proportionally to the visible share of the
// content and places it by offset.
func computeThumb(cells, contentLen, viewportLen, offset int) thumb {
	track := cells * subcell
	if track == 0 {
		return thumb{}
	}

	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := contentLen - viewportLen
	if maxOffset == 0 {
		return thumb{length: track}
	}
	offset = min(max(offset, 0), maxOffset)

	length := min(max(track*viewportLen/contentLen, subcell), track)
	return thumb{
		start:  (track - length) * offset / maxOffset,
		length: length,
	}
}

// coverage returns which part of cell the thumb covers, in subcell units
// relative to the cell's top.
func (t thumb) coverage(cell int) (start, length int) {
	cellStart, cellEnd := cell*subcell, (cell+1)*subcell
	from := max(t.start, cellStart)
	to := min(t.start+t.length, cellEnd)
	if to <= from {
		return 0, 0
	}
	return from - cellStart, to - from
}

func (s *ScrollBar) glyph(start, length int) (string, tcell.Style) {
	switch {
	case length <= 0:
		return s.glyphSet.Track, s.trackStyle
	case length >= subcell:
		return s.glyphSet.ThumbLower[subcell-1], s.thumbStyle
	case start == 0:
		return s.glyphSet.ThumbUpper[length-1], s.thumbStyle
	default:
		return s.glyphSet.ThumbLower[length-1], s.thumbStyle
	}
}

// Draw draws the scroll bar.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	x, y, _, height := s.GetInnerRect()
	if height <= 0 || s.contentLen <= 0 {
		return
	}
	viewport := s.viewportLen
	if viewport == 0 {
		viewport = height
	}
	if s.autoHide && s.contentLen <= viewport {
		return
	}

	t := computeThumb(height, s.contentLen, viewport, s.offset)
	for cell := range height {
		glyph, style := s.glyph(t.coverage(cell))
		screen.Put(x, y+cell, glyph, style)
	}
}

var _ Primitive = (*ScrollBar)(nil)
