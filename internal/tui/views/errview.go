package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/matheus3301/catchup/internal/tui/ui"
)

// ErrorView shows a failed run and how to recover.
type ErrorView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewErrorView creates the error screen.
func NewErrorView(theme *ui.Theme) *ErrorView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBorder(true)
	tv.SetTitle(" Something went wrong ")
	tv.SetTitleColor(theme.ErrorColor)
	tv.SetBorderColor(theme.ErrorColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)

	return &ErrorView{TextView: tv, theme: theme}
}

// Update replaces the displayed error message.
func (ev *ErrorView) Update(msg string) {
	ev.Clear()
	errColor := ui.ColorName(ev.theme.ErrorColor)
	_, _ = fmt.Fprintf(ev, "\n\n\n[%s::b]%s[-:-:-]\n\n[::d]r to adjust settings and retry, b for the splash screen[-:-:-]", errColor, tview.Escape(msg))
}

// Hints returns the shortcut hints for this page.
func (ev *ErrorView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "r", Description: "Retry"},
		{Key: "b", Description: "Splash"},
		{Key: "q", Description: "Quit"},
	}
}
