// Package store persists parsed chats in a local sqlite database so
// stats can be aggregated across imports without re-parsing exports.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS chats (
    name           TEXT PRIMARY KEY,
    chat_type      TEXT NOT NULL,
    total_messages INTEGER NOT NULL DEFAULT 0,
    total_calls    INTEGER NOT NULL DEFAULT 0,
    start_at       TEXT NOT NULL DEFAULT '',
    end_at         TEXT NOT NULL DEFAULT '',
    imported_at    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS messages (
    chat        TEXT NOT NULL,
    seq         INTEGER NOT NULL,
    sender      TEXT NOT NULL,
    ts          TEXT NOT NULL,
    kind        TEXT NOT NULL,
    media_type  TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL,
    word_count  INTEGER NOT NULL DEFAULT 0,
    char_count  INTEGER NOT NULL DEFAULT 0,
    emoji_count INTEGER NOT NULL DEFAULT 0,
    url_count   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (chat, seq)
);

CREATE TABLE IF NOT EXISTS calls (
    chat             TEXT NOT NULL,
    seq              INTEGER NOT NULL,
    initiator        TEXT NOT NULL,
    ts               TEXT NOT NULL,
    call_type        TEXT NOT NULL,
    status           TEXT NOT NULL,
    duration_minutes INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (chat, seq)
);

CREATE TABLE IF NOT EXISTS participants (
    chat          TEXT NOT NULL,
    name          TEXT NOT NULL,
    message_count INTEGER NOT NULL DEFAULT 0,
    media_count   INTEGER NOT NULL DEFAULT 0,
    first_at      TEXT NOT NULL DEFAULT '',
    last_at       TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (chat, name)
);

CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(chat, sender);
`

// DB wraps the sqlite handle.
type DB struct {
	db *sql.DB
}

// Open opens (creating if necessary) the store at dbPath.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the underlying handle.
func (d *DB) Close() error {
	return d.db.Close()
}
