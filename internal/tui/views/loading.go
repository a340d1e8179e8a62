package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/matheus3301/catchup/internal/tui/ui"
)

var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// LoadingView is shown while a background run is in flight.
type LoadingView struct {
	*tview.TextView
	theme *ui.Theme
	tick  int
}

// NewLoadingView creates the loading screen.
func NewLoadingView(theme *ui.Theme) *LoadingView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)

	return &LoadingView{TextView: tv, theme: theme}
}

// Tick advances the spinner one frame and re-renders. The render loop calls
// it once per frame while this page is front.
func (lv *LoadingView) Tick(mode string, limit int) {
	lv.tick++
	lv.Clear()

	frame := spinnerFrames[lv.tick%len(spinnerFrames)]
	detail := fmt.Sprintf("fetching up to %d messages and summarizing", limit)
	if mode == "clipboard" {
		detail = "capturing selection and summarizing"
	}
	dots := strings.Repeat(".", lv.tick/5%4)

	_, _ = fmt.Fprintf(lv, "\n\n\n%c Generating catch-up summary%s\n\n[::d]%s[-:-:-]", frame, dots, detail)
}

// Hints returns the shortcut hints for this page. Loading cannot be left
// until the run resolves, so there is nothing to offer.
func (lv *LoadingView) Hints() []ui.MenuHint {
	return nil
}
