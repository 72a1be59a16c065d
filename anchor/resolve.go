package anchor

// Fallback decides where a position lands when its anchored row was removed.
//
// There is no universally right answer: a cleared list, a deletion in the
// middle and a replaced page all look the same from here. Pick the policy
// that matches the direction new content is expected to arrive from.
type Fallback uint8

const (
	// FallbackBottom lands on the last row of the new content. It suits
	// lists that grow upward, where removed content is assumed to have been
	// above and the remaining content stays anchored at its bottom edge.
	FallbackBottom Fallback = iota
	// FallbackTop lands on the top of the new content.
	FallbackTop
)

// FallbackFor maps the expected direction of new content to a policy:
// content arriving above (expectUp) falls back to the bottom.
func FallbackFor(expectUp bool) Fallback {
	if expectUp {
		return FallbackBottom
	}
	return FallbackTop
}

// String returns the name of the policy.
func (f Fallback) String() string {
	switch f {
	case FallbackBottom:
		return "bottom"
	case FallbackTop:
		return "top"
	default:
		return "unknown"
	}
}

// Resolution tells how a position was turned into an offset.
type Resolution uint8

const (
	// Resolved means the anchor, or the absolute offset, was used as is.
	Resolved Resolution = iota
	// FellBack means the anchored row is gone and the fallback policy
	// picked the offset.
	FellBack
	// Pending means the host cannot report the needed geometry yet. The
	// offset is meaningless and resolution must be retried after the next
	// layout pass.
	Pending
)

// String returns the name of the resolution.
func (r Resolution) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case FellBack:
		return "fallback"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Resolve computes the scroll offset that restores p within seq. Negative item
// offsets are clamped to zero.
func Resolve[K comparable](p Position[K], seq Sequence[K], geo Geometry[K], fallback Fallback) (int, Resolution) {
	if p.Kind != KindItem {
		return p.Offset, Resolved
	}

	if seq.Contains(p.Key) {
		top, ok := geo.RowTop(p.Key)
		if !ok {
			return 0, Pending
		}
		return top + max(p.Offset, 0), Resolved
	}

	if fallback == FallbackTop {
		return 0, FellBack
	}
	last, ok := seq.Last()
	if !ok {
		return 0, FellBack
	}
	top, ok := geo.RowTop(last)
	if !ok {
		return 0, Pending
	}
	return top, FellBack
}
