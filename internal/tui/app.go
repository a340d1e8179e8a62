package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matheus3301/catchup/internal/config"
	"github.com/matheus3301/catchup/internal/tui/ui"
	"github.com/matheus3301/catchup/internal/tui/views"
	"github.com/matheus3301/catchup/internal/workflow"
)

// frameInterval paces the render loop that drains worker completions.
const frameInterval = 100 * time.Millisecond

// pageFor maps workflow states to page names.
var pageFor = map[workflow.State]string{
	workflow.Splash:  "splash",
	workflow.Config:  "config",
	workflow.Loading: "loading",
	workflow.Summary: "summary",
	workflow.Error:   "error",
}

// App is the main TUI application shell. Every screen is a page; the active
// page always mirrors the workflow state.
type App struct {
	app     *tview.Application
	pages   *tview.Pages
	ctrl    *workflow.Controller
	theme   *ui.Theme
	logo    *ui.Logo
	menu    *ui.Menu
	splash  *views.SplashView
	config  *views.ConfigView
	loading *views.LoadingView
	summary *views.SummaryView
	errView *views.ErrorView
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(ctrl *workflow.Controller, cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		ctrl:    ctrl,
		theme:   theme,
		logo:    ui.NewLogo(theme),
		menu:    ui.NewMenu(theme),
		splash:  views.NewSplashView(theme),
		loading: views.NewLoadingView(theme),
		summary: views.NewSummaryView(theme),
		errView: views.NewErrorView(theme),
		ctx:     ctx,
		cancel:  cancel,
	}
	a.config = views.NewConfigView(theme, *cfg, views.ConfigCallbacks{
		OnMode:     ctrl.SetMode,
		OnChatName: ctrl.SetChatName,
		OnLimit:    ctrl.SetLimit,
		OnGenerate: a.generate,
	})

	a.setupLayout()
	return a
}

func (a *App) setupLayout() {
	a.pages.AddPage("splash", a.splash, true, true)
	a.pages.AddPage("config", a.config, true, false)
	a.pages.AddPage("loading", a.loading, true, false)
	a.pages.AddPage("summary", a.summary, true, false)
	a.pages.AddPage("error", a.errView, true, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.logo, 5, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.menu, 1, 0, false)
	root.SetBackgroundColor(a.theme.BgColor)

	a.app.SetRoot(root, true)
	a.app.SetInputCapture(a.handleKey)
	a.menu.Update(a.splash.Hints())
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	state := a.ctrl.State()

	// Let the form's widgets handle all keys normally while configuring.
	if state == workflow.Config {
		if event.Key() == tcell.KeyEscape {
			_ = a.ctrl.Back()
			a.sync()
			return nil
		}
		return event
	}

	switch state {
	case workflow.Splash:
		switch {
		case event.Key() == tcell.KeyEnter:
			_ = a.ctrl.GetStarted()
		case event.Key() == tcell.KeyRune && event.Rune() == 'q':
			a.app.Stop()
		}
		a.sync()
		return nil

	case workflow.Summary:
		switch {
		case event.Key() == tcell.KeyUp:
			a.ctrl.ScrollBy(-1)
		case event.Key() == tcell.KeyDown:
			a.ctrl.ScrollBy(1)
		case event.Key() == tcell.KeyPgUp:
			a.ctrl.ScrollBy(-10)
		case event.Key() == tcell.KeyPgDn:
			a.ctrl.ScrollBy(10)
		case event.Key() == tcell.KeyRune && event.Rune() == 'r':
			_ = a.ctrl.Retry()
		case event.Key() == tcell.KeyRune && event.Rune() == 'b', event.Key() == tcell.KeyEscape:
			_ = a.ctrl.Back()
		case event.Key() == tcell.KeyRune && event.Rune() == 'q':
			a.app.Stop()
		}
		a.sync()
		return nil

	case workflow.Error:
		switch {
		case event.Key() == tcell.KeyRune && event.Rune() == 'r':
			_ = a.ctrl.Retry()
		case event.Key() == tcell.KeyRune && event.Rune() == 'b', event.Key() == tcell.KeyEscape:
			_ = a.ctrl.Back()
		case event.Key() == tcell.KeyRune && event.Rune() == 'q':
			a.app.Stop()
		}
		a.sync()
		return nil
	}

	// Loading: a run is in flight, swallow everything until it resolves.
	return nil
}

// generate dispatches a run from the config form. Validation failures
// transition to Error synchronously with no worker, so the shell must sync
// here; waiting for the frame loop would leave the form frozen on screen.
func (a *App) generate() {
	_ = a.ctrl.Generate(a.ctx)
	a.sync()
}

// sync brings the front page, its content, and the menu bar in line with the
// workflow state.
func (a *App) sync() {
	state := a.ctrl.State()
	page := pageFor[state]
	if front, _ := a.pages.GetFrontPage(); front != page {
		a.pages.SwitchToPage(page)
		if state == workflow.Config {
			a.app.SetFocus(a.config)
		}
	}

	switch state {
	case workflow.Summary:
		a.summary.Update(a.ctrl.SummaryText(), a.ctrl.MessageCount(), a.ctrl.Scroll())
		a.menu.Update(a.summary.Hints())
	case workflow.Error:
		a.errView.Update(a.ctrl.ErrorMessage())
		a.menu.Update(a.errView.Hints())
	case workflow.Loading:
		s := a.ctrl.Settings()
		a.loading.Tick(string(s.Mode), s.Limit)
		a.menu.Update(a.loading.Hints())
	case workflow.Config:
		a.menu.Update(a.config.Hints())
	default:
		a.menu.Update(a.splash.Hints())
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.startFrameLoop()
	return a.app.Run()
}

// startFrameLoop drains at most one worker completion per frame and redraws.
// Draining from the single render goroutine is what keeps state resolution
// single-threaded.
func (a *App) startFrameLoop() {
	ticker := time.NewTicker(frameInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.app.QueueUpdateDraw(func() {
					resolved := a.ctrl.Poll()
					if resolved || a.ctrl.State() == workflow.Loading {
						a.sync()
					}
				})
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
