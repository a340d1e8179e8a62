package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/matheus3301/catchup/internal/tui/ui"
)

// SummaryView shows the generated catch-up summary in a scrollable pane.
type SummaryView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewSummaryView creates the summary screen.
func NewSummaryView(theme *ui.Theme) *SummaryView {
	tv := tview.NewTextView().
		SetDynamicColors(false).
		SetWrap(true).
		SetWordWrap(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetTitleColor(theme.TitleColor)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)

	return &SummaryView{TextView: tv, theme: theme}
}

// Update replaces the displayed summary and positions the viewport.
func (sv *SummaryView) Update(summary string, messageCount, scroll int) {
	sv.SetTitle(fmt.Sprintf(" Catch-Up Summary (%d messages) ", messageCount))
	sv.SetText(summary)
	sv.ScrollTo(scroll, 0)
}

// Hints returns the shortcut hints for this page.
func (sv *SummaryView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "↑/↓", Description: "Scroll"},
		{Key: "r", Description: "New catch-up"},
		{Key: "b", Description: "Splash"},
		{Key: "q", Description: "Quit"},
	}
}
