package stableview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	BorderColor              tcell.Color // Box borders.
	FocusBorderColor         tcell.Color // Box borders while focused.
	TitleColor               tcell.Color // Box titles.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text, e.g. row headers.
	TertiaryTextColor        tcell.Color // Pull indicator and other hints.
	ErrorTextColor           tcell.Color // Refresh failures.
}

// Styles defines the theme for applications. The default is for a black
// background and some basic colors.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	BorderColor:              color.White,
	FocusBorderColor:         color.Aqua,
	TitleColor:               color.White,
	PrimaryTextColor:         color.White,
	SecondaryTextColor:       color.Yellow,
	TertiaryTextColor:        color.Green,
	ErrorTextColor:           color.Red,
}
