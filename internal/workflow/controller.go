package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matheus3301/catchup/internal/bus"
	"github.com/matheus3301/catchup/internal/config"
	"github.com/matheus3301/catchup/internal/pipeline"
)

// Runner executes one catch-up run in the background worker.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}

// Settings are the user-editable dispatch parameters. They are mutated only
// while in Config and read once when a run is dispatched.
type Settings struct {
	Mode     pipeline.Mode
	ChatName string
	Limit    int
}

// outcome is the single completion message a worker sends back.
type outcome struct {
	res pipeline.Result
	err error
}

// Controller drives the interactive workflow. The worker communicates
// completion solely through a 1-buffered channel; the render loop drains at
// most one message per frame via Poll, so no state is written from two
// goroutines at once.
type Controller struct {
	machine *Machine
	runner  Runner
	cfg     *config.Config
	bus     *bus.Bus
	logger  *zap.Logger

	mu       sync.RWMutex
	settings Settings
	summary  string
	errMsg   string
	count    int
	scroll   int

	done chan outcome
}

// NewController creates a workflow controller starting on the splash screen.
func NewController(machine *Machine, runner Runner, cfg *config.Config, b *bus.Bus, logger *zap.Logger) *Controller {
	return &Controller{
		machine: machine,
		runner:  runner,
		cfg:     cfg,
		bus:     b,
		logger:  logger,
		settings: Settings{
			Mode:  pipeline.ModeDB,
			Limit: cfg.DefaultLimit,
		},
		done: make(chan outcome, 1),
	}
}

// State returns the active workflow state.
func (c *Controller) State() State {
	return c.machine.Current()
}

// GetStarted leaves the splash screen.
func (c *Controller) GetStarted() error {
	return c.machine.Transition(Config)
}

// Retry returns to configuration from a resolved run.
func (c *Controller) Retry() error {
	return c.machine.Transition(Config)
}

// Back returns to the splash screen from a resolved run.
func (c *Controller) Back() error {
	return c.machine.Transition(Splash)
}

// SetMode updates the retrieval mode. Ignored outside Config.
func (c *Controller) SetMode(m pipeline.Mode) {
	if c.machine.Current() != Config {
		return
	}
	c.mu.Lock()
	c.settings.Mode = m
	c.mu.Unlock()
}

// SetChatName updates the chat name. Ignored outside Config.
func (c *Controller) SetChatName(name string) {
	if c.machine.Current() != Config {
		return
	}
	c.mu.Lock()
	c.settings.ChatName = name
	c.mu.Unlock()
}

// SetLimit updates the message-count bound, clamped. Ignored outside Config.
func (c *Controller) SetLimit(n int) {
	if c.machine.Current() != Config {
		return
	}
	c.mu.Lock()
	c.settings.Limit = config.ClampLimit(n)
	c.mu.Unlock()
}

// Settings returns a snapshot of the dispatch parameters.
func (c *Controller) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Generate validates input and dispatches the background run. An empty chat
// name in db mode fails synchronously into Error without spawning a worker.
// Generate is only reachable from Config; a second activation while a run is
// outstanding fails the Loading transition and spawns nothing.
func (c *Controller) Generate(ctx context.Context) error {
	s := c.Settings()

	if s.Mode == pipeline.ModeDB && s.ChatName == "" {
		return c.fail("chat name is required in db mode")
	}

	if err := c.machine.Transition(Loading); err != nil {
		return err
	}

	runID := uuid.New().String()
	c.logger.Info("run dispatched",
		zap.String("run_id", runID),
		zap.String("mode", string(s.Mode)),
		zap.Int("limit", s.Limit))
	if c.bus != nil {
		c.bus.Publish(bus.Event{Kind: "run.dispatched", Timestamp: time.Now(), Payload: runID})
	}

	go func() {
		res, err := c.runner.Run(ctx, pipeline.Request{
			RunID:    runID,
			Mode:     s.Mode,
			ChatName: s.ChatName,
			Limit:    s.Limit,
			DBPath:   c.cfg.ChatDBPath,
		})
		c.done <- outcome{res: res, err: err}
	}()
	return nil
}

// Poll drains at most one completion message and applies its transition.
// The render loop calls it once per frame; it never blocks.
func (c *Controller) Poll() bool {
	select {
	case o := <-c.done:
		c.resolve(o)
		return true
	default:
		return false
	}
}

func (c *Controller) resolve(o outcome) {
	switch {
	case o.err != nil:
		c.logger.Error("run failed", zap.Error(o.err))
		_ = c.fail(o.err.Error())
	case o.res.MessageCount == 0:
		_ = c.fail("no messages found")
	default:
		if err := c.machine.Transition(Summary); err != nil {
			return
		}
		c.mu.Lock()
		c.summary = o.res.Summary
		c.count = o.res.MessageCount
		c.scroll = 0
		c.mu.Unlock()
	}
	if c.bus != nil {
		c.bus.Publish(bus.Event{Kind: "run.resolved", Timestamp: time.Now(), Payload: c.machine.Current()})
	}
}

func (c *Controller) fail(msg string) error {
	if err := c.machine.Transition(Error); err != nil {
		return err
	}
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
	return nil
}

// SummaryText returns the stored summary.
func (c *Controller) SummaryText() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.summary
}

// ErrorMessage returns the stored error description.
func (c *Controller) ErrorMessage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// MessageCount returns how many messages the last successful run covered.
func (c *Controller) MessageCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// Scroll returns the summary view scroll offset.
func (c *Controller) Scroll() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scroll
}

// ScrollBy moves the summary scroll offset, never below zero. The view
// clamps the upper bound against its own height.
func (c *Controller) ScrollBy(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scroll += delta
	if c.scroll < 0 {
		c.scroll = 0
	}
}
