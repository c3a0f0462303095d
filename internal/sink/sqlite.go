package sink

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iksnae/chat-snare/internal"
	_ "modernc.org/sqlite"
)

// SQLiteSink archives records in a sqlite database, with run summaries
// recorded alongside. The fingerprint column is unique, so replaying a
// transcript into an existing archive stays idempotent.
type SQLiteSink struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS messages (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	ts          TEXT NOT NULL,
	sender      TEXT NOT NULL,
	body        TEXT NOT NULL,
	approximate INTEGER NOT NULL DEFAULT 0,
	fingerprint TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS runs (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	channel             TEXT,
	finished_at         TEXT NOT NULL,
	cycles              INTEGER NOT NULL,
	total_emitted       INTEGER NOT NULL,
	unique_participants INTEGER NOT NULL
);`

func newSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Append inserts one record; an already-archived fingerprint is ignored
func (s *SQLiteSink) Append(record *internal.ChatRecord) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO messages (ts, sender, body, approximate, fingerprint) VALUES (?, ?, ?, ?, ?)",
		record.Timestamp, record.Sender, record.Body, record.Approximate, record.Fingerprint(),
	)
	if err != nil {
		return &internal.WriteError{Sink: "sqlite", Err: err}
	}
	return nil
}

// Summarize records the finished run
func (s *SQLiteSink) Summarize(summary internal.Summary) error {
	_, err := s.db.Exec(
		"INSERT INTO runs (channel, finished_at, cycles, total_emitted, unique_participants) VALUES (?, ?, ?, ?, ?)",
		summary.Channel, time.Now().Format(time.RFC3339), summary.Cycles,
		summary.TotalEmitted, summary.UniqueParticipants,
	)
	if err != nil {
		return &internal.WriteError{Sink: "sqlite", Err: err}
	}
	return nil
}

// Close closes the database
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
