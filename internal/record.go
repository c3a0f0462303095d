package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// FragmentKind classifies one content fragment of a raw node
type FragmentKind int

const (
	// FragmentText is a plain text span
	FragmentText FragmentKind = iota
	// FragmentEmote is an inline pictorial token (emote image)
	FragmentEmote
)

// Fragment is one ordered piece of a raw node's content
type Fragment struct {
	Kind  FragmentKind
	Text  string // plain text, for FragmentText
	Label string // emote label, for FragmentEmote
}

// RawNode is one rendered message element as snapshotted from the feed
// surface, before normalization
type RawNode struct {
	Timestamp string     // displayed time-of-day, empty if the UI shows none
	Sender    string     // sender identifier attribute, empty if missing
	Fragments []Fragment // ordered content fragments
	RawText   string     // full text of the element, fallback when no fragments
	Markup    string     // raw markup, kept for diagnostics only
}

// UnknownSender is the sentinel used when a node carries no sender identifier
const UnknownSender = "Unknown"

// ChatRecord is the canonical emitted unit. Immutable once built; never
// mutated after fingerprinting.
type ChatRecord struct {
	Timestamp   string `json:"timestamp" yaml:"timestamp"`
	Sender      string `json:"sender" yaml:"sender"`
	Body        string `json:"body" yaml:"body"`
	Approximate bool   `json:"approximate,omitempty" yaml:"approximate,omitempty"`
}

// Line renders the transcript line format: "<timestamp> <sender>: <body>"
func (r *ChatRecord) Line() string {
	return fmt.Sprintf("%s %s: %s", r.Timestamp, r.Sender, r.Body)
}

// Fingerprint returns the dedup fingerprint: sha256 of the formatted line.
// Deterministic in (timestamp, sender, body); the Approximate flag does not
// participate, so a re-read of the same line stays a duplicate.
func (r *ChatRecord) Fingerprint() string {
	sum := sha256.Sum256([]byte(r.Line()))
	return hex.EncodeToString(sum[:])
}
