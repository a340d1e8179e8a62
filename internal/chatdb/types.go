package chatdb

import "time"

// UnknownSender is the placeholder used when a message has no resolvable handle.
const UnknownSender = "Unknown"

// Message is one retrieved chat entry. Built fresh per fetch, immutable after.
type Message struct {
	Text      string
	Timestamp *time.Time // nil when absent or unparseable
	FromMe    bool
	Sender    string // handle identifier, or UnknownSender
	Service   string // transport tag (iMessage, SMS), informational only
}

// ChatMatch identifies a chat row resolved from a user-supplied display name.
// One name may resolve to several rows, e.g. the same group across services.
type ChatMatch struct {
	RowID       int64
	GUID        string
	DisplayName string
}
