package sink

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/iksnae/chat-snare/internal"
	_ "modernc.org/sqlite"
)

func TestSQLiteSink_ArchivesRecordsAndRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	s, err := New("sqlite", path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := s.Append(internal.CreateTestRecord("12:00:00", "alice", "hi")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	// Same fingerprint again: idempotent insert
	if err := s.Append(internal.CreateTestRecord("12:00:00", "alice", "hi")); err != nil {
		t.Fatalf("duplicate Append() error = %v", err)
	}
	if err := s.Summarize(internal.Summary{
		Channel:            "somechannel",
		Cycles:             3,
		TotalEmitted:       1,
		UniqueParticipants: 1,
	}); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var messages int
	if err := db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&messages); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if messages != 1 {
		t.Errorf("messages = %d, want 1 (duplicate ignored)", messages)
	}

	var channel string
	var emitted int
	if err := db.QueryRow("SELECT channel, total_emitted FROM runs").Scan(&channel, &emitted); err != nil {
		t.Fatalf("runs query failed: %v", err)
	}
	if channel != "somechannel" || emitted != 1 {
		t.Errorf("run row = (%s, %d), want (somechannel, 1)", channel, emitted)
	}
}
