package plainscroll

import "github.com/gdamore/tcell/v2"

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text (e.g. status lines).
	TrackColor               tcell.Color // Scrollbar tracks and arrows.
	ThumbColor               tcell.Color // Scrollbar thumbs.
	DisabledColor            tcell.Color // Disabled scrollbars.
}

// Styles defines the theme for applications. The default is for a black
// background with a white thumb on a gray track.
var Styles = Theme{
	PrimitiveBackgroundColor: tcell.ColorBlack,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorYellow,
	TrackColor:               tcell.ColorGray,
	ThumbColor:               tcell.ColorWhite,
	DisabledColor:            tcell.ColorDarkGray,
}
