package stableview

// BorderSet defines the glyphs used when a box frame is drawn.
type BorderSet struct {
	Top         string
	Bottom      string
	Left        string
	Right       string
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
}

// BorderSetPlain uses light box drawing lines with square corners.
func BorderSetPlain() BorderSet {
	return BorderSet{
		Top:         BoxDrawingsLightHorizontal,
		Bottom:      BoxDrawingsLightHorizontal,
		Left:        BoxDrawingsLightVertical,
		Right:       BoxDrawingsLightVertical,
		TopLeft:     BoxDrawingsLightDownAndRight,
		TopRight:    BoxDrawingsLightDownAndLeft,
		BottomLeft:  BoxDrawingsLightUpAndRight,
		BottomRight: BoxDrawingsLightUpAndLeft,
	}
}

// BorderSetRound uses light box drawing lines with arc corners.
func BorderSetRound() BorderSet {
	b := BorderSetPlain()
	b.TopLeft = BoxDrawingsLightArcDownAndRight
	b.TopRight = BoxDrawingsLightArcDownAndLeft
	b.BottomLeft = BoxDrawingsLightArcUpAndRight
	b.BottomRight = BoxDrawingsLightArcUpAndLeft
	return b
}

// BorderSetThick uses heavy box drawing lines.
func BorderSetThick() BorderSet {
	return BorderSet{
		Top:         BoxDrawingsHeavyHorizontal,
		Bottom:      BoxDrawingsHeavyHorizontal,
		Left:        BoxDrawingsHeavyVertical,
		Right:       BoxDrawingsHeavyVertical,
		TopLeft:     BoxDrawingsHeavyDownAndRight,
		TopRight:    BoxDrawingsHeavyDownAndLeft,
		BottomLeft:  BoxDrawingsHeavyUpAndRight,
		BottomRight: BoxDrawingsHeavyUpAndLeft,
	}
}

// Borders selects which edges of a box are drawn.
type Borders uint

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll  Borders = BordersTop | BordersBottom | BordersLeft | BordersRight
)

// Has reports whether every edge in flag is set.
func (b Borders) Has(flag Borders) bool {
	return b&flag == flag
}
