package sink

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iksnae/chat-snare/internal"
)

// JSONLSink appends records as JSON objects, one per line.
// Unlike the text format it preserves the approximate-timestamp flag.
type JSONLSink struct {
	file *os.File
	enc  *json.Encoder
}

func newJSONLSink(path string) (*JSONLSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	return &JSONLSink{file: file, enc: json.NewEncoder(file)}, nil
}

// Append encodes one record to a single line
func (s *JSONLSink) Append(record *internal.ChatRecord) error {
	if err := s.enc.Encode(record); err != nil {
		return &internal.WriteError{Sink: "jsonl", Err: err}
	}
	return nil
}

// Summarize is a no-op for the line-oriented format
func (s *JSONLSink) Summarize(summary internal.Summary) error {
	return nil
}

// Close closes the output file
func (s *JSONLSink) Close() error {
	return s.file.Close()
}
