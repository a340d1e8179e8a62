package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/matheus3301/catchup/internal/bus"
	"github.com/matheus3301/catchup/internal/chatdb"
	"github.com/matheus3301/catchup/internal/clipboard"
	"github.com/matheus3301/catchup/internal/config"
	"github.com/matheus3301/catchup/internal/history"
	"github.com/matheus3301/catchup/internal/lock"
	"github.com/matheus3301/catchup/internal/logging"
	"github.com/matheus3301/catchup/internal/paths"
	"github.com/matheus3301/catchup/internal/pipeline"
	"github.com/matheus3301/catchup/internal/summarize"
	"github.com/matheus3301/catchup/internal/tui"
	"github.com/matheus3301/catchup/internal/workflow"
)

// Module returns the fx module for the interactive app, composing all
// providers and lifecycle hooks.
func Module() fx.Option {
	return fx.Module("catchup",
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideHistory,
			provideSummarizer,
			provideClipboard,
			provideRunner,
			provideController,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig() (*config.Config, error) {
	if err := paths.EnsureBase(); err != nil {
		return nil, err
	}
	return config.LoadOrDefault(paths.ConfigPath())
}

// provideLogger builds a file-only logger. The terminal belongs to the TUI,
// so nothing may write to stderr while it runs.
func provideLogger() (*zap.Logger, error) {
	return logging.New(paths.LogPath(), false)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *workflow.Machine {
	return workflow.NewMachine(b)
}

func provideLock(logger *zap.Logger) (*lock.Lock, error) {
	l, err := lock.Acquire(paths.BaseDir())
	if err != nil {
		return nil, err
	}
	logger.Info("app lock acquired")
	return l, nil
}

func provideHistory(logger *zap.Logger) (*history.DB, error) {
	db, err := history.Open(paths.HistoryDBPath())
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("history migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("history migrations up to date", zap.Uint("version", result.Version))
	}
	return db, nil
}

func provideSummarizer(cfg *config.Config) (*summarize.Client, error) {
	key := config.APIKey()
	if key == "" {
		return nil, fmt.Errorf("%s is not set", config.EnvAPIKey)
	}
	gen, err := summarize.NewGeminiGenerator(context.Background(), key)
	if err != nil {
		return nil, err
	}
	return summarize.NewClient(gen, cfg.Model), nil
}

func provideClipboard() *clipboard.Capture {
	return clipboard.New()
}

func provideRunner(clip *clipboard.Capture, sum *summarize.Client, hist *history.DB, logger *zap.Logger) *pipeline.Runner {
	return pipeline.NewRunner(chatdb.Fetch, clip, sum, hist, logger)
}

func provideController(m *workflow.Machine, runner *pipeline.Runner, cfg *config.Config, b *bus.Bus, logger *zap.Logger) *workflow.Controller {
	return workflow.NewController(m, runner, cfg, b, logger)
}

func provideApp(ctrl *workflow.Controller, cfg *config.Config) *tui.App {
	return tui.NewApp(ctrl, cfg)
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *tui.App, hist *history.DB, lk *lock.Lock, b *bus.Bus, logger *zap.Logger) {
	// Mirror bus traffic into the log file for postmortems. Unsubscribing on
	// stop closes the channel, which ends the draining goroutine.
	events, unsubscribe := b.Subscribe("", 64)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				for evt := range events {
					logger.Info("event", zap.String("kind", evt.Kind), zap.Any("payload", evt.Payload))
				}
			}()

			go func() {
				if err := app.Run(); err != nil {
					logger.Error("tui exited", zap.Error(err))
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			app.Stop()
			unsubscribe()
			if err := hist.Close(); err != nil {
				logger.Warn("error closing history store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("app stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
