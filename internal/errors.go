package internal

import (
	"errors"
	"fmt"
)

var (
	errNilNode   = errors.New("nil node")
	errEmptyNode = errors.New("node has no extractable structure")
)

// SurfaceError represents a failure to locate or use the feed surface.
// Locate failures are fatal for the run; everything else is cycle-scoped.
type SurfaceError struct {
	Op  string // "locate", "snapshot", "reset"
	URL string
	Err error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("surface error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// ExtractionError represents one node whose content could not be
// normalized. Recovered locally: the node is skipped, the cycle continues.
type ExtractionError struct {
	Index  int
	Markup string // raw markup, for diagnostic logging only
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error [node %d]: %v", e.Index, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// WriteError represents a sink failure persisting one record.
// Recovered locally; the record is not re-queued.
type WriteError struct {
	Sink string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error [%s]: %v", e.Sink, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// TransientError represents a recoverable UI action failure (consent
// dialog absent, scroll reset failing). Never escalated.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient ui error [%s]: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}
