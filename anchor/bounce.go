package anchor

// BounceGuard filters captures taken during an elastic overscroll. Offsets
// read mid-bounce lie outside the content range and would snap again once the
// bounce settles, so the guard keeps returning the last trusted position
// until the viewport is back in range.
//
// The zero value holds Absolute(0) as its last trusted position.
type BounceGuard[K comparable] struct {
	last Position[K]
}

// ShouldTrustCapture reports whether a capture taken now is meaningful.
func (g *BounceGuard[K]) ShouldTrustCapture(v Viewport[K]) bool {
	return !v.Overscrolled()
}

// Capture returns a fresh capture of v, or the last trusted position when v
// is overscrolled.
func (g *BounceGuard[K]) Capture(v Viewport[K]) Position[K] {
	if !g.ShouldTrustCapture(v) {
		return g.last
	}
	g.last = Capture(v)
	return g.last
}

// Last returns the last trusted position.
func (g *BounceGuard[K]) Last() Position[K] {
	return g.last
}

// Reset replaces the last trusted position.
func (g *BounceGuard[K]) Reset(p Position[K]) {
	g.last = p
}
