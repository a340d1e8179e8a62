package tui

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/matheus3301/catchup/internal/config"
	"github.com/matheus3301/catchup/internal/pipeline"
	"github.com/matheus3301/catchup/internal/workflow"
)

type stubRunner struct {
	calls atomic.Int32
	res   pipeline.Result
	err   error
}

func (s *stubRunner) Run(context.Context, pipeline.Request) (pipeline.Result, error) {
	s.calls.Add(1)
	return s.res, s.err
}

func newTestApp(t *testing.T, runner *stubRunner) *App {
	t.Helper()
	cfg := config.Default()
	ctrl := workflow.NewController(workflow.NewMachine(nil), runner, cfg, nil, zap.NewNop())
	return NewApp(ctrl, cfg)
}

func TestGenerateWithoutChatNameShowsErrorPage(t *testing.T) {
	runner := &stubRunner{}
	a := newTestApp(t, runner)

	if err := a.ctrl.GetStarted(); err != nil {
		t.Fatal(err)
	}
	a.sync()

	// Db mode with an empty chat name fails synchronously, no worker runs.
	// The shell must land on the error page immediately, not on the next
	// keypress.
	a.generate()

	if got := a.ctrl.State(); got != workflow.Error {
		t.Fatalf("state = %v, want %v", got, workflow.Error)
	}
	if front, _ := a.pages.GetFrontPage(); front != "error" {
		t.Errorf("front page = %q, want error", front)
	}
	if n := runner.calls.Load(); n != 0 {
		t.Errorf("runner called %d times, want 0", n)
	}
}

func TestGenerateSwitchesToLoadingPage(t *testing.T) {
	runner := &stubRunner{res: pipeline.Result{Summary: "recap", MessageCount: 3}}
	a := newTestApp(t, runner)

	if err := a.ctrl.GetStarted(); err != nil {
		t.Fatal(err)
	}
	a.ctrl.SetChatName("Trip Planning")
	a.generate()

	if got := a.ctrl.State(); got != workflow.Loading {
		t.Fatalf("state = %v, want %v", got, workflow.Loading)
	}
	if front, _ := a.pages.GetFrontPage(); front != "loading" {
		t.Errorf("front page = %q, want loading", front)
	}
}

func TestErrorPageRetryReturnsToConfig(t *testing.T) {
	runner := &stubRunner{}
	a := newTestApp(t, runner)

	if err := a.ctrl.GetStarted(); err != nil {
		t.Fatal(err)
	}
	a.generate() // empty chat name, lands on the error page

	a.handleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))

	if got := a.ctrl.State(); got != workflow.Config {
		t.Fatalf("state = %v, want %v", got, workflow.Config)
	}
	if front, _ := a.pages.GetFrontPage(); front != "config" {
		t.Errorf("front page = %q, want config", front)
	}
}
