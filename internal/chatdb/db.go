package chatdb

import (
	"database/sql"
	"fmt"
	"os"
	"slices"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	cerrors "github.com/matheus3301/catchup/internal/errors"
	"github.com/matheus3301/catchup/internal/mactime"
)

// DB wraps a read-only connection to the macOS Messages chat.db.
type DB struct {
	*sql.DB
}

// Open opens the message store read-only. Fails with NOT_FOUND when nothing
// exists at path.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, cerrors.NewNotFound(path)
	}
	db, err := sql.Open("sqlite3", path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open chat db: %w", err)
	}
	// Verify connection.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping chat db: %w", err)
	}
	return &DB{db}, nil
}

// ResolveChat maps a display name to matching chat rows. An exact match wins;
// only when no row matches exactly does it fall back to substring matching.
// Returns NO_MATCH when both passes come up empty.
func (db *DB) ResolveChat(name string) ([]ChatMatch, error) {
	matches, err := db.queryChats(
		`SELECT ROWID, guid, display_name FROM chat WHERE display_name = ?`, name)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		matches, err = db.queryChats(
			`SELECT ROWID, guid, display_name FROM chat WHERE display_name LIKE ?`, "%"+name+"%")
		if err != nil {
			return nil, err
		}
	}
	if len(matches) == 0 {
		return nil, cerrors.NewNoMatch(name)
	}
	return matches, nil
}

func (db *DB) queryChats(query string, arg any) ([]ChatMatch, error) {
	rows, err := db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var matches []ChatMatch
	for rows.Next() {
		var m ChatMatch
		var guid, name sql.NullString
		if err := rows.Scan(&m.RowID, &guid, &name); err != nil {
			return nil, err
		}
		m.GUID = guid.String
		m.DisplayName = name.String
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// RecentMessages returns the latest limit messages across the given chat rows,
// oldest first. The query orders descending so LIMIT keeps the newest rows;
// the result is reversed in memory to chronological order.
func (db *DB) RecentMessages(chatIDs []int64, limit int) ([]Message, error) {
	if len(chatIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chatIDs)), ",")
	query := fmt.Sprintf(`
		SELECT m.text, m.date, m.is_from_me, h.id, m.service
		FROM message m
		JOIN chat_message_join cmj ON cmj.message_id = m.ROWID
		LEFT JOIN handle h ON m.handle_id = h.ROWID
		WHERE cmj.chat_id IN (%s)
		ORDER BY m.date DESC
		LIMIT ?`, placeholders)

	args := make([]any, 0, len(chatIDs)+1)
	for _, id := range chatIDs {
		args = append(args, id)
	}
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var msgs []Message
	for rows.Next() {
		var text, handle, service sql.NullString
		var date sql.NullFloat64
		var fromMe sql.NullBool
		if err := rows.Scan(&text, &date, &fromMe, &handle, &service); err != nil {
			return nil, err
		}
		m := Message{
			Text:    text.String,
			FromMe:  fromMe.Valid && fromMe.Bool,
			Sender:  UnknownSender,
			Service: service.String,
		}
		if handle.Valid && handle.String != "" {
			m.Sender = handle.String
		}
		if date.Valid {
			v := date.Float64
			m.Timestamp = mactime.Normalize(&v)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(msgs)
	return msgs, nil
}

// Fetch opens the store, resolves chatName and returns its most recent limit
// messages in chronological order. One connection per call, closed on return.
func Fetch(path, chatName string, limit int) ([]Message, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	chats, err := db.ResolveChat(chatName)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(chats))
	for i, c := range chats {
		ids[i] = c.RowID
	}
	return db.RecentMessages(ids, limit)
}
