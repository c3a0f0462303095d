package internal

import "sort"

// Ledger is the set of fingerprints already emitted during a run.
// Monotonically growing, never pruned; bounded by the maxMessages limit.
type Ledger struct {
	seen map[string]bool
}

// NewLedger creates an empty Ledger
func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]bool)}
}

// HasSeen reports whether the fingerprint was already recorded
func (l *Ledger) HasSeen(fingerprint string) bool {
	return l.seen[fingerprint]
}

// Record marks a fingerprint as seen
func (l *Ledger) Record(fingerprint string) {
	l.seen[fingerprint] = true
}

// Size returns the number of recorded fingerprints
func (l *Ledger) Size() int {
	return len(l.seen)
}

// Fingerprints returns all recorded fingerprints, sorted for stable output
func (l *Ledger) Fingerprints() []string {
	out := make([]string, 0, len(l.seen))
	for fp := range l.seen {
		out = append(out, fp)
	}
	sort.Strings(out)
	return out
}

// Participants is the set of distinct sender identities seen so far,
// used only for derived statistics
type Participants struct {
	seen map[string]bool
}

// NewParticipants creates an empty Participants set
func NewParticipants() *Participants {
	return &Participants{seen: make(map[string]bool)}
}

// Add records a sender identity. The Unknown sentinel is never recorded.
func (p *Participants) Add(sender string) {
	if sender == "" || sender == UnknownSender {
		return
	}
	p.seen[sender] = true
}

// Size returns the number of distinct senders
func (p *Participants) Size() int {
	return len(p.seen)
}

// Names returns all recorded senders, sorted for stable output
func (p *Participants) Names() []string {
	out := make([]string, 0, len(p.seen))
	for name := range p.seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
