package anchor

// Rect is the vertical extent of a row in content coordinates: Top is the
// distance from the top of the content to the row's top edge.
type Rect struct {
	Top    int
	Height int
}

// Bottom returns the first line below the row.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// Row is an on-screen row.
type Row[K comparable] struct {
	Key  K
	Rect Rect
}

// Viewport is the read side of a list host. Implementations must not change
// any state when queried.
type Viewport[K comparable] interface {
	// VisibleRows returns the rows currently on screen in display order.
	VisibleRows() []Row[K]
	// ScrollOffset returns the distance from the top of the content to the
	// top of the viewport.
	ScrollOffset() int
	// Overscrolled reports whether the viewport is in an elastic overscroll
	// past either end of the content.
	Overscrolled() bool
}

// Geometry reports row positions for items of the current sequence, including
// rows that are not laid out yet.
type Geometry[K comparable] interface {
	// RowTop returns the top edge of the row with the given identity. It
	// returns false when the host cannot compute geometry yet, for example
	// before its first layout pass.
	RowTop(key K) (int, bool)
}

// Host is everything the Coordinator needs from a list implementation.
type Host[K comparable] interface {
	Viewport[K]
	Geometry[K]

	// ApplyDiff replaces the displayed rows with the given sequence,
	// reusing rows by identity where possible.
	ApplyDiff(next Sequence[K])
	// ScrollTo moves the viewport to the given offset immediately, without
	// animation. Hosts clamp the offset to their valid range.
	ScrollTo(offset int)
}

// TopRow returns the first row in display order that is at least partially
// visible.
func TopRow[K comparable](v Viewport[K]) (Row[K], bool) {
	offset := v.ScrollOffset()
	for _, row := range v.VisibleRows() {
		if row.Rect.Bottom() > offset {
			return row, true
		}
	}
	return Row[K]{}, false
}
