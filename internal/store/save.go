package store

import (
	"fmt"
	"time"

	"github.com/Destrings2/wachatanalyzer-sub000/internal/chat"
)

// SaveResult replaces any previously stored data for the named chat
// with the given parse result, atomically.
func (d *DB) SaveResult(name string, res *chat.Result) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"messages", "calls", "participants"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE chat = ?", name); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO chats
		(name, chat_type, total_messages, total_calls, start_at, end_at, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name,
		string(res.Metadata.Type),
		res.Metadata.TotalMessages,
		len(res.Calls),
		formatTime(res.Metadata.Start),
		formatTime(res.Metadata.End),
		formatTime(time.Now()),
	); err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}

	msgStmt, err := tx.Prepare(`INSERT INTO messages
		(chat, seq, sender, ts, kind, media_type, content, word_count, char_count, emoji_count, url_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare messages: %w", err)
	}
	defer msgStmt.Close()

	for i, m := range res.Messages {
		if _, err := msgStmt.Exec(
			name, i, m.Sender, formatTime(m.Timestamp),
			string(m.Kind), string(m.Media), m.Content,
			m.Metadata.WordCount, m.Metadata.CharCount,
			len(m.Metadata.Emojis), len(m.Metadata.URLs),
		); err != nil {
			return fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	callStmt, err := tx.Prepare(`INSERT INTO calls
		(chat, seq, initiator, ts, call_type, status, duration_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare calls: %w", err)
	}
	defer callStmt.Close()

	for i, c := range res.Calls {
		if _, err := callStmt.Exec(
			name, i, c.Initiator, formatTime(c.Timestamp),
			string(c.Type), string(c.Status), c.DurationMinutes,
		); err != nil {
			return fmt.Errorf("insert call %d: %w", i, err)
		}
	}

	for _, p := range res.Participants {
		if _, err := tx.Exec(`INSERT INTO participants
			(chat, name, message_count, media_count, first_at, last_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			name, p.Name, p.MessageCount, p.MediaCount,
			formatTime(p.FirstMessage), formatTime(p.LastMessage),
		); err != nil {
			return fmt.Errorf("insert participant %s: %w", p.Name, err)
		}
	}

	return tx.Commit()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
