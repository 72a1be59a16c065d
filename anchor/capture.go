package anchor

// Capture converts the current viewport state into a Position. An empty or
// not yet laid out viewport yields Absolute(0). The offset is clamped to zero
// so a transient elastic overshoot is never recorded as a negative offset that
// would later cause a downward jump.
//
// Capture does not check for overscroll; use a BounceGuard for that.
func Capture[K comparable](v Viewport[K]) Position[K] {
	row, ok := TopRow(v)
	if !ok {
		return Absolute[K](0)
	}
	return AtItem(row.Key, max(v.ScrollOffset()-row.Rect.Top, 0))
}
