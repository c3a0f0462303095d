package internal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSurfaceError(t *testing.T) {
	cause := errors.New("timeout waiting for selector")
	err := &SurfaceError{Op: "locate", URL: "https://www.twitch.tv/somechannel", Err: cause}

	if !strings.Contains(err.Error(), "locate") {
		t.Errorf("Error() = %q, want it to mention the op", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
}

func TestExtractionError(t *testing.T) {
	cause := errors.New("bad markup")
	err := &ExtractionError{Index: 7, Markup: "<div/>", Err: cause}

	if !strings.Contains(err.Error(), "node 7") {
		t.Errorf("Error() = %q, want it to carry the node index", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}

	var target *ExtractionError
	wrapped := fmt.Errorf("cycle 3: %w", err)
	if !errors.As(wrapped, &target) {
		t.Error("errors.As() should unwrap to *ExtractionError")
	}
	if target.Markup != "<div/>" {
		t.Errorf("Markup = %q, want preserved markup", target.Markup)
	}
}

func TestWriteError(t *testing.T) {
	cause := errors.New("disk full")
	err := &WriteError{Sink: "text", Err: cause}

	if !strings.Contains(err.Error(), "text") {
		t.Errorf("Error() = %q, want it to name the sink", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
}

func TestTransientError(t *testing.T) {
	cause := errors.New("element detached")
	err := &TransientError{Op: "reset", Err: cause}

	if !strings.Contains(err.Error(), "reset") {
		t.Errorf("Error() = %q, want it to carry the op", err.Error())
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() should return the cause")
	}
}
