package internal

import (
	"context"
	"errors"
)

// FakeSurface replays scripted batches, one per cycle, for controller tests.
// After the script runs out it keeps returning the last batch.
type FakeSurface struct {
	Batches   [][]RawNode
	BatchErrs []error
	ResetErr  error
	Snapshots int
	Resets    int
}

// CurrentBatch returns the scripted batch for the current cycle
func (f *FakeSurface) CurrentBatch(ctx context.Context) ([]RawNode, error) {
	idx := f.Snapshots
	f.Snapshots++
	if idx < len(f.BatchErrs) && f.BatchErrs[idx] != nil {
		return nil, f.BatchErrs[idx]
	}
	if len(f.Batches) == 0 {
		return nil, nil
	}
	if idx >= len(f.Batches) {
		idx = len(f.Batches) - 1
	}
	return f.Batches[idx], nil
}

// ResetToTop counts reset calls
func (f *FakeSurface) ResetToTop(ctx context.Context) error {
	f.Resets++
	return f.ResetErr
}

// CaptureSink collects appended records and summaries in memory
type CaptureSink struct {
	Records     []*ChatRecord
	Summaries   []Summary
	FailAppends bool
}

// Append stores the record, or fails when FailAppends is set
func (s *CaptureSink) Append(record *ChatRecord) error {
	if s.FailAppends {
		return &WriteError{Sink: "capture", Err: errors.New("append refused")}
	}
	s.Records = append(s.Records, record)
	return nil
}

// Summarize stores the summary
func (s *CaptureSink) Summarize(summary Summary) error {
	s.Summaries = append(s.Summaries, summary)
	return nil
}

// Lines returns the formatted lines of every captured record
func (s *CaptureSink) Lines() []string {
	lines := make([]string, 0, len(s.Records))
	for _, record := range s.Records {
		lines = append(lines, record.Line())
	}
	return lines
}

// CreateTestNode builds a text-only RawNode for tests
func CreateTestNode(timestamp, sender, text string) RawNode {
	return RawNode{
		Timestamp: timestamp,
		Sender:    sender,
		Fragments: []Fragment{{Kind: FragmentText, Text: text}},
	}
}

// CreateTestRecord builds a ChatRecord for tests
func CreateTestRecord(timestamp, sender, body string) *ChatRecord {
	return &ChatRecord{Timestamp: timestamp, Sender: sender, Body: body}
}
