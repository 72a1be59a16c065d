package stableview

// Glyphs used for frames, markers and the pull indicator. Strings use \u
// escapes to keep the source ASCII-safe.
const (
	SemigraphicsHorizontalEllipsis = "\u2026" // …
	SemigraphicsMiddleDot          = "\u00b7" // ·
	SemigraphicsDownwardsArrow     = "\u2193" // ↓
	SemigraphicsClockwiseArrow     = "\u27f3" // ⟳

	BoxDrawingsLightHorizontal      = "\u2500" // ─
	BoxDrawingsHeavyHorizontal      = "\u2501" // ━
	BoxDrawingsLightVertical        = "\u2502" // │
	BoxDrawingsHeavyVertical        = "\u2503" // ┃
	BoxDrawingsLightDownAndRight    = "\u250c" // ┌
	BoxDrawingsHeavyDownAndRight    = "\u250f" // ┏
	BoxDrawingsLightDownAndLeft     = "\u2510" // ┐
	BoxDrawingsHeavyDownAndLeft     = "\u2513" // ┓
	BoxDrawingsLightUpAndRight      = "\u2514" // └
	BoxDrawingsHeavyUpAndRight      = "\u2517" // ┗
	BoxDrawingsLightUpAndLeft       = "\u2518" // ┘
	BoxDrawingsHeavyUpAndLeft       = "\u251b" // ┛
	BoxDrawingsLightArcDownAndRight = "\u256d" // ╭
	BoxDrawingsLightArcDownAndLeft  = "\u256e" // ╮
	BoxDrawingsLightArcUpAndLeft    = "\u256f" // ╯
	BoxDrawingsLightArcUpAndRight   = "\u2570" // ╰
)
