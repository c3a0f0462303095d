// Package sink provides append-only persistence for accepted chat records.
package sink

import (
	"fmt"

	"github.com/iksnae/chat-snare/internal"
)

// Sink receives records in emission order and the final run summary.
// Append failures are soft: the controller logs them and continues.
type Sink interface {
	Append(record *internal.ChatRecord) error
	Summarize(summary internal.Summary) error
	Close() error
}

// New creates a sink writing to path in the given format
func New(format, path string) (Sink, error) {
	switch format {
	case "text", "txt", "":
		return newTextSink(path)
	case "jsonl":
		return newJSONLSink(path)
	case "sqlite", "db":
		return newSQLiteSink(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: text, jsonl, sqlite)", format)
	}
}

// Extension returns the file extension for a format
func Extension(format string) string {
	switch format {
	case "jsonl":
		return "jsonl"
	case "sqlite", "db":
		return "db"
	default:
		return "txt"
	}
}
