package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/matheus3301/catchup/internal/chatdb"
	"github.com/matheus3301/catchup/internal/clipboard"
	"github.com/matheus3301/catchup/internal/config"
	cerrors "github.com/matheus3301/catchup/internal/errors"
	"github.com/matheus3301/catchup/internal/history"
	"github.com/matheus3301/catchup/internal/logging"
	"github.com/matheus3301/catchup/internal/paths"
	"github.com/matheus3301/catchup/internal/pipeline"
	"github.com/matheus3301/catchup/internal/summarize"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	return &cli.App{
		Name:    "catchup",
		Usage:   "Summarize group chats you have been ignoring",
		Version: Version,
		Commands: []*cli.Command{
			dbCmd(),
			clipboardCmd(),
			historyCmd(),
		},
	}
}

// dbCmd summarizes recent messages read from the Messages database.
func dbCmd() *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Summarize a chat read from the local Messages database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "chat-name", Aliases: []string{"c"}, Required: true, Usage: "Group chat display name (exact or substring)"},
			&cli.StringFlag{Name: "db-path", Usage: "Path to chat.db (default: ~/Library/Messages/chat.db)"},
			&cli.IntFlag{Name: "last", Aliases: []string{"n"}, Usage: "How many recent messages to fetch"},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "Gemini model to use"},
		},
		Action: func(c *cli.Context) error {
			env, err := setup(c)
			if err != nil {
				return outputError(err)
			}
			defer env.close()

			req := pipeline.Request{
				Mode:     pipeline.ModeDB,
				ChatName: c.String("chat-name"),
				Limit:    env.limit(c),
				DBPath:   env.cfg.ChatDBPath,
			}
			if p := c.String("db-path"); p != "" {
				req.DBPath = p
			}
			return runAndPrint(c.Context, env, req)
		},
	}
}

// clipboardCmd summarizes a selection copied out of Messages.app.
func clipboardCmd() *cli.Command {
	return &cli.Command{
		Name:  "clipboard",
		Usage: "Summarize the current selection in Messages.app",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "Gemini model to use"},
		},
		Action: func(c *cli.Context) error {
			env, err := setup(c)
			if err != nil {
				return outputError(err)
			}
			defer env.close()

			fmt.Fprintln(os.Stderr, "Select the messages in Messages.app, keep it frontmost, then press Enter here...")
			_, _ = bufio.NewReader(os.Stdin).ReadString('\n')

			return runAndPrint(c.Context, env, pipeline.Request{
				Mode:  pipeline.ModeClipboard,
				Limit: env.cfg.DefaultLimit,
			})
		},
	}
}

// historyCmd browses previously recorded summaries.
func historyCmd() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Browse recorded summaries",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent summaries, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum entries to show"},
				},
				Action: func(c *cli.Context) error {
					hist, err := openHistory()
					if err != nil {
						return outputError(err)
					}
					defer func() { _ = hist.Close() }()

					entries, err := hist.List(c.Int("limit"))
					if err != nil {
						return outputError(err)
					}
					if len(entries) == 0 {
						fmt.Println("No summaries recorded yet.")
						return nil
					}
					for _, e := range entries {
						label := e.ChatName
						if label == "" {
							label = "(clipboard)"
						}
						when := time.UnixMilli(e.CreatedAt).Format("2006-01-02 15:04")
						fmt.Printf("%4d  %s  %-9s  %-30s  %d messages\n", e.ID, when, e.Mode, label, e.MessageCount)
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "Show a recorded summary",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: catchup history show <id>", 1)
					}
					id, err := strconv.ParseInt(c.Args().First(), 10, 64)
					if err != nil {
						return cli.Exit(fmt.Sprintf("invalid id %q", c.Args().First()), 1)
					}

					hist, err := openHistory()
					if err != nil {
						return outputError(err)
					}
					defer func() { _ = hist.Close() }()

					s, err := hist.Get(id)
					if err != nil {
						return outputError(err)
					}
					if s == nil {
						return cli.Exit(fmt.Sprintf("no summary with id %d", id), 1)
					}

					when := time.UnixMilli(s.CreatedAt).Format(time.RFC1123)
					fmt.Printf("Run:      %s\n", s.RunID)
					fmt.Printf("Mode:     %s\n", s.Mode)
					if s.ChatName != "" {
						fmt.Printf("Chat:     %s\n", s.ChatName)
					}
					fmt.Printf("Messages: %d\n", s.MessageCount)
					fmt.Printf("Model:    %s\n", s.Model)
					fmt.Printf("Date:     %s\n", when)
					fmt.Printf("\n%s\n", s.Summary)
					return nil
				},
			},
		},
	}
}

// env holds the assembled pipeline for one CLI invocation.
type env struct {
	cfg    *config.Config
	runner *pipeline.Runner
	hist   *history.DB
	logger *zap.Logger
}

// setup loads config, opens the history store, and wires the pipeline. The
// logger writes to the app log file so command output stays clean.
func setup(c *cli.Context) (*env, error) {
	if err := paths.EnsureBase(); err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(paths.ConfigPath())
	if err != nil {
		return nil, err
	}
	if m := c.String("model"); m != "" {
		cfg.Model = m
	}

	key := config.APIKey()
	if key == "" {
		return nil, fmt.Errorf("%s is not set", config.EnvAPIKey)
	}

	logger, err := logging.New(paths.LogPath(), false)
	if err != nil {
		return nil, err
	}

	gen, err := summarize.NewGeminiGenerator(c.Context, key)
	if err != nil {
		return nil, err
	}

	hist, err := openHistory()
	if err != nil {
		// Recording is best-effort; the run itself still works.
		logger.Warn("history store unavailable", zap.Error(err))
		hist = nil
	}

	return &env{
		cfg:    cfg,
		runner: pipeline.NewRunner(chatdb.Fetch, clipboard.New(), summarize.NewClient(gen, cfg.Model), hist, logger),
		hist:   hist,
		logger: logger,
	}, nil
}

func (e *env) close() {
	if e.hist != nil {
		_ = e.hist.Close()
	}
	_ = e.logger.Sync()
}

func (e *env) limit(c *cli.Context) int {
	if c.IsSet("last") {
		return config.ClampLimit(c.Int("last"))
	}
	return e.cfg.DefaultLimit
}

// runAndPrint executes one run and writes the summary to stdout. Progress
// goes to stderr so the summary can be piped.
func runAndPrint(ctx context.Context, e *env, req pipeline.Request) error {
	res, err := e.runner.Run(ctx, req)
	if err != nil {
		return outputError(err)
	}
	if res.MessageCount == 0 {
		fmt.Println("No messages found.")
		return nil
	}
	fmt.Fprintf(os.Stderr, "Fetched %d messages, summary recorded as run %s.\n", res.MessageCount, res.RunID)
	fmt.Printf("\n=== CATCH-UP SUMMARY ===\n\n%s\n", res.Summary)
	return nil
}

func openHistory() (*history.DB, error) {
	if err := paths.EnsureBase(); err != nil {
		return nil, err
	}
	db, err := history.Open(paths.HistoryDBPath())
	if err != nil {
		return nil, err
	}
	if _, err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// outputError formats an error for the CLI.
func outputError(err error) error {
	if cErr, ok := err.(*cerrors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
