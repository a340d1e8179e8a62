package ui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor          tcell.Color
	FgColor          tcell.Color
	BorderColor      tcell.Color
	BorderFocusColor tcell.Color
	TitleColor       tcell.Color
	MenuKeyColor     tcell.Color
	AccentColor      tcell.Color
	ErrorColor       tcell.Color
}

// DefaultTheme returns a k9s-inspired dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:          tcell.ColorBlack,
		FgColor:          tcell.ColorCadetBlue,
		BorderColor:      tcell.ColorDodgerBlue,
		BorderFocusColor: tcell.ColorLightSkyBlue,
		TitleColor:       tcell.ColorFuchsia,
		MenuKeyColor:     tcell.ColorDodgerBlue,
		AccentColor:      tcell.ColorOrange,
		ErrorColor:       tcell.ColorOrangeRed,
	}
}

// ColorName maps a tcell color back to its markup name for dynamic tags.
func ColorName(c tcell.Color) string {
	for name, col := range tcell.ColorNames {
		if col == c {
			return name
		}
	}
	return "white"
}
