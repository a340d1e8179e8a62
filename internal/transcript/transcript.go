package transcript

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheus3301/catchup/internal/chatdb"
)

// selfLabel replaces the sender for messages the user sent.
const selfLabel = "Me"

// Format renders messages into the plain-text transcript fed to the
// summarizer, one line per message: "[timestamp] sender: text". Missing
// timestamps and empty texts render as empty slots, never as errors.
func Format(msgs []chatdb.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		ts := ""
		if m.Timestamp != nil {
			ts = m.Timestamp.Format(time.RFC3339)
		}
		sender := m.Sender
		if m.FromMe {
			sender = selfLabel
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n", ts, sender, m.Text)
	}
	return b.String()
}
