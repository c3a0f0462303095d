package internal

import (
	"errors"
	"testing"
	"time"
)

func fixedClockNormalizer(hhmmss string) *Normalizer {
	n := NewNormalizer()
	n.clock = func() time.Time {
		t, _ := time.Parse("15:04:05", hhmmss)
		return t
	}
	return n
}

func TestNormalizer_Normalize_Body(t *testing.T) {
	tests := []struct {
		name string
		node RawNode
		want string
	}{
		{
			name: "single text fragment",
			node: CreateTestNode("12:00:00", "alice", "hi"),
			want: "hi",
		},
		{
			name: "text and emote fragments",
			node: RawNode{
				Timestamp: "12:00:00",
				Sender:    "alice",
				Fragments: []Fragment{
					{Kind: FragmentText, Text: "nice one"},
					{Kind: FragmentEmote, Label: "Kappa"},
				},
			},
			want: "nice one [Kappa]",
		},
		{
			name: "emote only",
			node: RawNode{
				Timestamp: "12:00:00",
				Sender:    "alice",
				Fragments: []Fragment{{Kind: FragmentEmote, Label: "PogChamp"}},
			},
			want: "[PogChamp]",
		},
		{
			name: "fragments trimmed and single spaced",
			node: RawNode{
				Timestamp: "12:00:00",
				Sender:    "alice",
				Fragments: []Fragment{
					{Kind: FragmentText, Text: "  hello  "},
					{Kind: FragmentText, Text: "world "},
				},
			},
			want: "hello world",
		},
		{
			name: "no fragments falls back to raw text",
			node: RawNode{Timestamp: "12:00:00", Sender: "alice", RawText: "  fallback text  "},
			want: "fallback text",
		},
		{
			name: "whitespace-only raw text normalizes empty",
			node: RawNode{Timestamp: "12:00:00", Sender: "alice", RawText: "   "},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer()
			record, err := n.Normalize(&tt.node)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if record.Body != tt.want {
				t.Errorf("Body = %q, want %q", record.Body, tt.want)
			}
		})
	}
}

func TestNormalizer_Normalize_SenderFallback(t *testing.T) {
	n := NewNormalizer()
	node := RawNode{Timestamp: "12:00:00", Fragments: []Fragment{{Kind: FragmentText, Text: "hi"}}}

	record, err := n.Normalize(&node)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if record.Sender != UnknownSender {
		t.Errorf("Sender = %q, want %q", record.Sender, UnknownSender)
	}
}

func TestNormalizer_Normalize_TimestampFallback(t *testing.T) {
	n := fixedClockNormalizer("09:08:07")
	node := RawNode{Sender: "alice", Fragments: []Fragment{{Kind: FragmentText, Text: "hi"}}}

	record, err := n.Normalize(&node)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if record.Timestamp != "09:08:07" {
		t.Errorf("Timestamp = %q, want wall-clock fallback %q", record.Timestamp, "09:08:07")
	}
	if !record.Approximate {
		t.Error("fallback timestamp must be flagged approximate")
	}
}

func TestNormalizer_Normalize_DisplayedTimestampNotApproximate(t *testing.T) {
	n := fixedClockNormalizer("09:08:07")
	node := CreateTestNode("12:34:56", "alice", "hi")

	record, err := n.Normalize(&node)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if record.Timestamp != "12:34:56" {
		t.Errorf("Timestamp = %q, want displayed %q", record.Timestamp, "12:34:56")
	}
	if record.Approximate {
		t.Error("displayed timestamp must not be flagged approximate")
	}
}

func TestNormalizer_Normalize_Failures(t *testing.T) {
	n := NewNormalizer()

	if _, err := n.Normalize(nil); err == nil {
		t.Error("Normalize(nil) should fail")
	}

	empty := RawNode{Markup: "<div class=\"broken\"></div>"}
	_, err := n.Normalize(&empty)
	if err == nil {
		t.Fatal("Normalize() of a structureless node should fail")
	}
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("error = %T, want *ExtractionError", err)
	}
	if extractionErr.Markup == "" {
		t.Error("ExtractionError should retain the raw markup for diagnostics")
	}
}
