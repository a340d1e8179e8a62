package views

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matheus3301/catchup/internal/config"
	"github.com/matheus3301/catchup/internal/pipeline"
	"github.com/matheus3301/catchup/internal/tui/ui"
)

// modeOptions maps dropdown entries to retrieval modes, in display order.
var modeOptions = []pipeline.Mode{pipeline.ModeDB, pipeline.ModeClipboard}

// ConfigCallbacks receive the form's edits and the generate activation.
type ConfigCallbacks struct {
	OnMode     func(pipeline.Mode)
	OnChatName func(string)
	OnLimit    func(int)
	OnGenerate func()
}

// ConfigView is the run configuration form.
type ConfigView struct {
	*tview.Form
	theme *ui.Theme
}

// NewConfigView creates the configuration form. The initial values come from
// the controller's defaults.
func NewConfigView(theme *ui.Theme, initial config.Config, cb ConfigCallbacks) *ConfigView {
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(" New Catch-Up ")
	form.SetTitleColor(theme.TitleColor)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetFieldTextColor(theme.FgColor)
	form.SetLabelColor(theme.FgColor)
	form.SetButtonBackgroundColor(theme.BorderColor)
	form.SetButtonActivatedStyle(tcell.StyleDefault.Background(theme.AccentColor).Foreground(theme.BgColor))

	form.AddDropDown("Mode", []string{"db", "clipboard"}, 0, func(_ string, index int) {
		if index >= 0 && index < len(modeOptions) && cb.OnMode != nil {
			cb.OnMode(modeOptions[index])
		}
	})
	form.AddInputField("Chat name", "", 40, nil, func(text string) {
		if cb.OnChatName != nil {
			cb.OnChatName(text)
		}
	})
	form.AddInputField("Messages", strconv.Itoa(initial.DefaultLimit), 6, tview.InputFieldInteger, func(text string) {
		n, err := strconv.Atoi(text)
		if err != nil {
			return
		}
		if cb.OnLimit != nil {
			cb.OnLimit(n)
		}
	})
	form.AddTextView("", "db mode reads chat.db directly.\nclipboard mode: select the messages in Messages.app,\nkeep it frontmost, then hit Generate.", 50, 3, true, false)
	form.AddButton("Generate", func() {
		if cb.OnGenerate != nil {
			cb.OnGenerate()
		}
	})

	return &ConfigView{Form: form, theme: theme}
}

// Hints returns the shortcut hints for this page.
func (cv *ConfigView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Splash"},
	}
}
