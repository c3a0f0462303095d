package internal

import (
	"strings"
	"time"
)

// Normalizer converts raw rendered nodes to ChatRecord format
type Normalizer struct {
	clock func() time.Time
}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{clock: time.Now}
}

// Normalize converts one RawNode to a ChatRecord.
// A node the surface could not decompose at all yields an ExtractionError;
// the caller skips it and continues with the rest of the batch.
func (n *Normalizer) Normalize(node *RawNode) (*ChatRecord, error) {
	if node == nil {
		return nil, &ExtractionError{Err: errNilNode}
	}
	if node.Timestamp == "" && node.Sender == "" && len(node.Fragments) == 0 && node.RawText == "" {
		// Snapshot yielded a node with no extractable structure. Keep the
		// markup so the failure can be diagnosed from the debug log.
		return nil, &ExtractionError{Markup: node.Markup, Err: errEmptyNode}
	}

	record := &ChatRecord{
		Timestamp: node.Timestamp,
		Sender:    node.Sender,
		Body:      n.normalizeBody(node),
	}

	if record.Timestamp == "" {
		// UI showed no time for this node: substitute extraction wall-clock
		// time and flag the record as approximate.
		record.Timestamp = n.clock().Format("15:04:05")
		record.Approximate = true
	}
	if record.Sender == "" {
		record.Sender = UnknownSender
	}

	return record, nil
}

// normalizeBody concatenates the node's fragments in order: pictorial
// tokens as "[label]", text spans verbatim, single-spaced, trimmed.
func (n *Normalizer) normalizeBody(node *RawNode) string {
	if len(node.Fragments) == 0 {
		// Node exposes no tagged sub-fields: read its overall text as a
		// single text fragment.
		return strings.TrimSpace(node.RawText)
	}

	var b strings.Builder
	for _, frag := range node.Fragments {
		switch frag.Kind {
		case FragmentEmote:
			b.WriteString("[")
			b.WriteString(frag.Label)
			b.WriteString("] ")
		default:
			b.WriteString(strings.TrimSpace(frag.Text))
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
