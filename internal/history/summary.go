package history

import (
	"database/sql"
	"time"
)

// Summary is one recorded catch-up run.
type Summary struct {
	ID           int64
	RunID        string
	Mode         string // "db" or "clipboard"
	ChatName     string // empty for clipboard runs
	MessageCount int
	Model        string
	Summary      string
	CreatedAt    int64 // unix milliseconds
}

// Insert records a completed run.
func (db *DB) Insert(s *Summary) error {
	if s.CreatedAt == 0 {
		s.CreatedAt = time.Now().UnixMilli()
	}
	res, err := db.Exec(`
		INSERT INTO summaries (run_id, mode, chat_name, message_count, model, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Mode, s.ChatName, s.MessageCount, s.Model, s.Summary, s.CreatedAt)
	if err != nil {
		return err
	}
	s.ID, _ = res.LastInsertId()
	return nil
}

// List returns the most recent summaries, newest first.
func (db *DB) List(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT id, run_id, mode, chat_name, message_count, model, summary, created_at
		FROM summaries
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.RunID, &s.Mode, &s.ChatName, &s.MessageCount, &s.Model, &s.Summary, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns a single summary by row id, or nil if absent.
func (db *DB) Get(id int64) (*Summary, error) {
	var s Summary
	err := db.QueryRow(`
		SELECT id, run_id, mode, chat_name, message_count, model, summary, created_at
		FROM summaries
		WHERE id = ?`, id).
		Scan(&s.ID, &s.RunID, &s.Mode, &s.ChatName, &s.MessageCount, &s.Model, &s.Summary, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
