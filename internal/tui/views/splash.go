package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/matheus3301/catchup/internal/tui/ui"
)

// SplashView is the landing screen.
type SplashView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewSplashView creates the splash screen.
func NewSplashView(theme *ui.Theme) *SplashView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)

	sv := &SplashView{TextView: tv, theme: theme}
	sv.render()
	return sv
}

func (sv *SplashView) render() {
	_, _ = fmt.Fprint(sv,
		"\n\n\nCatch up on a group chat you have been ignoring.\n\n"+
			"Reads recent messages from your local Messages database\n"+
			"(or a copied selection) and asks Gemini for a compact recap.\n\n\n"+
			"[::b]Press Enter to get started[-:-:-]")
}

// Hints returns the shortcut hints for this page.
func (sv *SplashView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Get started"},
		{Key: "q", Description: "Quit"},
	}
}
