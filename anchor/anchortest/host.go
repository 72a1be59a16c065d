// Package anchortest provides an in-memory list host for exercising the
// anchor package without a terminal.
package anchortest

import (
	"github.com/xqrs/stableview/anchor"
)

// Host is a scriptable anchor.Host. Rows are stacked without gaps; each row is
// DefaultHeight lines tall unless SetHeight says otherwise. The viewport may
// be dragged into an elastic overscroll past either end of the content.
type Host[K comparable] struct {
	// ViewportHeight is the number of visible lines.
	ViewportHeight int
	// DefaultHeight is the height of rows without an explicit height.
	DefaultHeight int
	// LayoutPending makes the host report no geometry and no visible rows,
	// as a real host would before its first layout pass.
	LayoutPending bool
	// PendAfterApply sets LayoutPending on every ApplyDiff, modelling a
	// host whose geometry is only known after its next layout pass.
	PendAfterApply bool
	// OnScroll, if set, is called after every offset change, the way a
	// toolkit's scroll delegate would fire.
	OnScroll func()

	seq     anchor.Sequence[K]
	heights map[K]int
	offset  int

	// ApplyCalls counts ApplyDiff calls.
	ApplyCalls int
	// Scrolls records the offsets requested through ScrollTo, after clamping.
	Scrolls []int
	// LastEdits holds the diff computed by the last ApplyDiff call.
	LastEdits []anchor.Edit[K]
}

// NewHost returns a host with the given viewport and default row heights.
func NewHost[K comparable](viewportHeight, defaultHeight int) *Host[K] {
	return &Host[K]{
		ViewportHeight: viewportHeight,
		DefaultHeight:  defaultHeight,
		seq:            anchor.NewSequence[K](),
		heights:        make(map[K]int),
	}
}

// SetHeight sets the height of the row with the given identity.
func (h *Host[K]) SetHeight(key K, height int) *Host[K] {
	h.heights[key] = height
	return h
}

// Sequence returns the displayed sequence.
func (h *Host[K]) Sequence() anchor.Sequence[K] {
	return h.seq
}

// Height returns the height of the row with the given identity.
func (h *Host[K]) Height(key K) int {
	if height, ok := h.heights[key]; ok {
		return height
	}
	return h.DefaultHeight
}

// ContentHeight returns the total height of all rows.
func (h *Host[K]) ContentHeight() int {
	total := 0
	for _, key := range h.seq.All() {
		total += h.Height(key)
	}
	return total
}

// MaxOffset returns the largest in-range scroll offset.
func (h *Host[K]) MaxOffset() int {
	return max(h.ContentHeight()-h.ViewportHeight, 0)
}

// VisibleRows implements anchor.Viewport.
func (h *Host[K]) VisibleRows() []anchor.Row[K] {
	if h.LayoutPending {
		return nil
	}
	var rows []anchor.Row[K]
	top := 0
	bottom := h.offset + h.ViewportHeight
	for _, key := range h.seq.All() {
		rect := anchor.Rect{Top: top, Height: h.Height(key)}
		top = rect.Bottom()
		if rect.Bottom() <= h.offset {
			continue
		}
		if rect.Top >= bottom {
			break
		}
		rows = append(rows, anchor.Row[K]{Key: key, Rect: rect})
	}
	return rows
}

// ScrollOffset implements anchor.Viewport.
func (h *Host[K]) ScrollOffset() int {
	return h.offset
}

// Overscrolled implements anchor.Viewport.
func (h *Host[K]) Overscrolled() bool {
	return h.offset < 0 || h.offset > h.MaxOffset()
}

// RowTop implements anchor.Geometry.
func (h *Host[K]) RowTop(key K) (int, bool) {
	if h.LayoutPending {
		return 0, false
	}
	top := 0
	for _, k := range h.seq.All() {
		if k == key {
			return top, true
		}
		top += h.Height(k)
	}
	return 0, false
}

// ApplyDiff implements anchor.Host. The raw offset is left alone, so the
// content moves under the viewport until the coordinator scrolls.
func (h *Host[K]) ApplyDiff(next anchor.Sequence[K]) {
	h.ApplyCalls++
	h.LastEdits = anchor.Diff(h.seq, next)
	h.seq = next
	if h.PendAfterApply {
		h.LayoutPending = true
	}
}

// ScrollTo implements anchor.Host.
func (h *Host[K]) ScrollTo(offset int) {
	offset = min(max(offset, 0), h.MaxOffset())
	h.Scrolls = append(h.Scrolls, offset)
	h.setOffset(offset)
}

// Drag scrolls by delta lines like a user gesture. The offset is not clamped,
// so dragging past either end overscrolls.
func (h *Host[K]) Drag(delta int) {
	h.setOffset(h.offset + delta)
}

// Settle ends an overscroll by snapping back into range.
func (h *Host[K]) Settle() {
	h.setOffset(min(max(h.offset, 0), h.MaxOffset()))
}

// TopVisible returns the identity and on-screen offset of the top-most
// visible row.
func (h *Host[K]) TopVisible() (K, int, bool) {
	row, ok := anchor.TopRow[K](h)
	if !ok {
		var zero K
		return zero, 0, false
	}
	return row.Key, h.offset - row.Rect.Top, true
}

func (h *Host[K]) setOffset(offset int) {
	if h.offset == offset {
		return
	}
	h.offset = offset
	if h.OnScroll != nil {
		h.OnScroll()
	}
}

var _ anchor.Host[string] = (*Host[string])(nil)
