package clipboard

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matheus3301/catchup/internal/chatdb"
	cerrors "github.com/matheus3301/catchup/internal/errors"
)

// unknownSender labels clipboard lines, which carry no sender information.
const unknownSender = "unknown"

// copyScript sends Cmd+C to the frontmost application and reads the
// clipboard back. The user must have selected messages in Messages.app
// and left it frontmost before this runs.
const copyScript = `
tell application "System Events"
	keystroke "c" using {command down}
end tell
delay 0.15
set theClipboard to the clipboard
return theClipboard
`

// Runner executes the copy-selection automation and returns clipboard text.
type Runner interface {
	Run(ctx context.Context) (string, error)
}

type osascriptRunner struct{}

func (osascriptRunner) Run(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", copyScript)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", cerrors.NewAutomation(strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}

// Capture retrieves the current Messages.app selection via the clipboard.
type Capture struct {
	runner Runner
}

// New creates a Capture backed by osascript.
func New() *Capture {
	return &Capture{runner: osascriptRunner{}}
}

// NewWithRunner creates a Capture with a custom automation runner.
func NewWithRunner(r Runner) *Capture {
	return &Capture{runner: r}
}

// Fetch runs the automation and splits the clipboard text into messages.
func (c *Capture) Fetch(ctx context.Context) ([]chatdb.Message, error) {
	text, err := c.runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	return Split(text), nil
}

// Split turns clipboard text into one message per non-blank line. Clipboard
// content can arrive with LF, CRLF, or bare CR line endings depending on
// what produced it, so any of the three terminates a line. Lines are kept
// verbatim; blankness is judged after trimming. No sender or timestamp is
// recovered from pasted text, this path is intentionally lossy.
func Split(text string) []chatdb.Message {
	var msgs []chatdb.Message
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		msgs = append(msgs, chatdb.Message{
			Text:   line,
			Sender: unknownSender,
		})
	}
	return msgs
}
