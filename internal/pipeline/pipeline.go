package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matheus3301/catchup/internal/chatdb"
	cerrors "github.com/matheus3301/catchup/internal/errors"
	"github.com/matheus3301/catchup/internal/history"
	"github.com/matheus3301/catchup/internal/transcript"
)

// Mode selects the retrieval path for a run.
type Mode string

const (
	ModeDB        Mode = "db"
	ModeClipboard Mode = "clipboard"
)

// Request describes one catch-up run.
type Request struct {
	RunID    string // assigned when empty
	Mode     Mode
	ChatName string // required in db mode
	Limit    int
	DBPath   string
}

// Result is the outcome of a successful run. A zero MessageCount means
// nothing was retrieved and no summary was requested.
type Result struct {
	RunID        string
	Summary      string
	MessageCount int
}

// Summarizer is the slice of the summarize client the runner needs.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	Model() string
}

// ClipboardFetcher retrieves the current selection as messages.
type ClipboardFetcher interface {
	Fetch(ctx context.Context) ([]chatdb.Message, error)
}

// StoreFunc retrieves recent messages for a chat from a store location.
// chatdb.Fetch satisfies it.
type StoreFunc func(path, chatName string, limit int) ([]chatdb.Message, error)

// Runner executes the retrieve → format → summarize sequence used by both
// the CLI and the interactive worker.
type Runner struct {
	store      StoreFunc
	clipboard  ClipboardFetcher
	summarizer Summarizer
	history    *history.DB // optional; nil disables recording
	logger     *zap.Logger
}

// NewRunner creates a pipeline runner. hist may be nil.
func NewRunner(store StoreFunc, clip ClipboardFetcher, sum Summarizer, hist *history.DB, logger *zap.Logger) *Runner {
	return &Runner{
		store:      store,
		clipboard:  clip,
		summarizer: sum,
		history:    hist,
		logger:     logger,
	}
}

// Run performs one catch-up run. Failures surface to the caller untouched;
// nothing is retried here.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	if req.Mode == ModeDB && req.ChatName == "" {
		return Result{}, cerrors.NewInvalidRequest("chat name is required in db mode")
	}
	if req.RunID == "" {
		req.RunID = uuid.New().String()
	}

	var (
		msgs []chatdb.Message
		err  error
	)
	switch req.Mode {
	case ModeClipboard:
		msgs, err = r.clipboard.Fetch(ctx)
	default:
		msgs, err = r.store(req.DBPath, req.ChatName, req.Limit)
	}
	if err != nil {
		return Result{}, err
	}

	r.logger.Info("messages retrieved",
		zap.String("run_id", req.RunID),
		zap.String("mode", string(req.Mode)),
		zap.Int("count", len(msgs)))

	if len(msgs) == 0 {
		return Result{RunID: req.RunID}, nil
	}

	summary, err := r.summarizer.Summarize(ctx, transcript.Format(msgs))
	if err != nil {
		return Result{}, err
	}

	r.record(req, summary, len(msgs))

	return Result{
		RunID:        req.RunID,
		Summary:      summary,
		MessageCount: len(msgs),
	}, nil
}

// record stores the run in history. Recording failure is logged, never fatal.
func (r *Runner) record(req Request, summary string, count int) {
	if r.history == nil {
		return
	}
	err := r.history.Insert(&history.Summary{
		RunID:        req.RunID,
		Mode:         string(req.Mode),
		ChatName:     req.ChatName,
		MessageCount: count,
		Model:        r.summarizer.Model(),
		Summary:      summary,
	})
	if err != nil {
		r.logger.Warn("failed to record summary", zap.Error(err), zap.String("run_id", req.RunID))
	}
}
