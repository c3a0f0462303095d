package sink

import (
	"fmt"
	"os"

	"github.com/iksnae/chat-snare/internal"
)

// TextSink appends records as plain transcript lines:
// "<timestamp> <sender>: <body>", one per line, UTF-8
type TextSink struct {
	file *os.File
}

func newTextSink(path string) (*TextSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	return &TextSink{file: file}, nil
}

// Append writes one transcript line
func (s *TextSink) Append(record *internal.ChatRecord) error {
	if _, err := fmt.Fprintln(s.file, record.Line()); err != nil {
		return &internal.WriteError{Sink: "text", Err: err}
	}
	return nil
}

// Summarize is a no-op: the transcript file holds records only,
// the summary goes to the terminal
func (s *TextSink) Summarize(summary internal.Summary) error {
	return nil
}

// Close closes the output file
func (s *TextSink) Close() error {
	return s.file.Close()
}
