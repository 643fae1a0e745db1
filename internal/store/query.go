package store

import (
	"database/sql"
	"fmt"
)

// ChatRow is one stored chat with its headline numbers.
type ChatRow struct {
	Name          string
	ChatType      string
	TotalMessages int
	TotalCalls    int
	StartAt       string
	EndAt         string
	ImportedAt    string
}

// Chats returns all stored chats ordered by name.
func (d *DB) Chats() ([]ChatRow, error) {
	rows, err := d.db.Query(`SELECT name, chat_type, total_messages, total_calls,
		start_at, end_at, imported_at FROM chats ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query chats: %w", err)
	}
	defer rows.Close()

	var out []ChatRow
	for rows.Next() {
		var c ChatRow
		if err := rows.Scan(&c.Name, &c.ChatType, &c.TotalMessages, &c.TotalCalls,
			&c.StartAt, &c.EndAt, &c.ImportedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Chat returns the stored row for one chat, or nil if absent.
func (d *DB) Chat(name string) (*ChatRow, error) {
	var c ChatRow
	err := d.db.QueryRow(`SELECT name, chat_type, total_messages, total_calls,
		start_at, end_at, imported_at FROM chats WHERE name = ?`, name).
		Scan(&c.Name, &c.ChatType, &c.TotalMessages, &c.TotalCalls,
			&c.StartAt, &c.EndAt, &c.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ParticipantRow is one stored participant.
type ParticipantRow struct {
	Chat         string
	Name         string
	MessageCount int
	MediaCount   int
	FirstAt      string
	LastAt       string
}

// Participants returns the stored participants for a chat, busiest
// first.
func (d *DB) Participants(chatName string) ([]ParticipantRow, error) {
	rows, err := d.db.Query(`SELECT chat, name, message_count, media_count, first_at, last_at
		FROM participants WHERE chat = ? ORDER BY message_count DESC, name`, chatName)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	var out []ParticipantRow
	for rows.Next() {
		var p ParticipantRow
		if err := rows.Scan(&p.Chat, &p.Name, &p.MessageCount, &p.MediaCount,
			&p.FirstAt, &p.LastAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Totals aggregates across every stored chat.
type Totals struct {
	Chats        int
	Messages     int
	Calls        int
	CallMinutes  int
	MissedCalls  int
	Participants int
}

// Totals computes cross-chat aggregates.
func (d *DB) Totals() (Totals, error) {
	var t Totals

	err := d.db.QueryRow(`SELECT COUNT(*),
		COALESCE(SUM(total_messages), 0),
		COALESCE(SUM(total_calls), 0)
		FROM chats`).Scan(&t.Chats, &t.Messages, &t.Calls)
	if err != nil {
		return t, fmt.Errorf("query chat totals: %w", err)
	}

	err = d.db.QueryRow(`SELECT COALESCE(SUM(duration_minutes), 0),
		COALESCE(SUM(CASE WHEN status = 'missed' THEN 1 ELSE 0 END), 0)
		FROM calls`).Scan(&t.CallMinutes, &t.MissedCalls)
	if err != nil {
		return t, fmt.Errorf("query call totals: %w", err)
	}

	err = d.db.QueryRow(`SELECT COUNT(DISTINCT name) FROM participants`).
		Scan(&t.Participants)
	if err != nil {
		return t, fmt.Errorf("query participant totals: %w", err)
	}

	return t, nil
}

// SenderCount is a per-sender message tally across stored chats.
type SenderCount struct {
	Sender   string
	Messages int
}

// TopSenders returns the busiest senders across all chats.
func (d *DB) TopSenders(limit int) ([]SenderCount, error) {
	rows, err := d.db.Query(`SELECT sender, COUNT(*) AS n FROM messages
		GROUP BY sender ORDER BY n DESC, sender LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top senders: %w", err)
	}
	defer rows.Close()

	var out []SenderCount
	for rows.Next() {
		var s SenderCount
		if err := rows.Scan(&s.Sender, &s.Messages); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
