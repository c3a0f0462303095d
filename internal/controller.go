package internal

import (
	"context"
	"errors"
	"time"
)

// Surface is the live feed of rendered message nodes.
// A snapshot returns whatever is currently rendered, in render order.
type Surface interface {
	CurrentBatch(ctx context.Context) ([]RawNode, error)
	ResetToTop(ctx context.Context) error
}

// Sink receives accepted records in emission order, plus the final summary
type Sink interface {
	Append(record *ChatRecord) error
	Summarize(summary Summary) error
}

// SessionState is the mutable state of one extraction run.
// Owned by the Controller; mutated once per cycle, never shared.
type SessionState struct {
	CycleCount        int
	PreviousBatchSize int
	WaitMs            int
	TotalEmitted      int
}

// Controller drives the poll -> extract -> decide -> wait loop.
// Single execution context; the only suspension points are the inter-cycle
// wait and the post-reset settle pause.
type Controller struct {
	surface      Surface
	sink         Sink
	settings     Settings
	channel      string
	normalizer   *Normalizer
	ledger       *Ledger
	participants *Participants
	state        SessionState

	sleep func(ctx context.Context, d time.Duration)
}

// ControllerOption adjusts a Controller before its run
type ControllerOption func(*Controller)

// WithLedger seeds the controller with a preloaded dedup ledger,
// used when resuming a previous run
func WithLedger(ledger *Ledger) ControllerOption {
	return func(c *Controller) {
		if ledger != nil {
			c.ledger = ledger
		}
	}
}

// WithParticipants seeds the controller with a preloaded participant set
func WithParticipants(participants *Participants) ControllerOption {
	return func(c *Controller) {
		if participants != nil {
			c.participants = participants
		}
	}
}

// WithChannel records the channel name for logging and the summary
func WithChannel(channel string) ControllerOption {
	return func(c *Controller) {
		c.channel = channel
	}
}

// NewController creates a Controller over a located surface and an open sink
func NewController(surface Surface, sink Sink, settings Settings, opts ...ControllerOption) *Controller {
	c := &Controller{
		surface:      surface,
		sink:         sink,
		settings:     settings,
		normalizer:   NewNormalizer(),
		ledger:       NewLedger(),
		participants: NewParticipants(),
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ledger returns the controller's dedup ledger, for state persistence
// after the run has terminated
func (c *Controller) Ledger() *Ledger {
	return c.ledger
}

// Participants returns the controller's participant set, for state
// persistence after the run has terminated
func (c *Controller) Participants() *Participants {
	return c.participants
}

// Run executes cycles until the scroll or message limit is reached, then
// emits the final summary. Failures inside a cycle are logged and recovered;
// the loop always terminates. Cancellation is honored at cycle boundaries
// only: a canceled context stops the loop before the next polling re-entry.
func (c *Controller) Run(ctx context.Context) (Summary, error) {
	c.state.WaitMs = c.settings.DefaultWaitMs

	for {
		if c.state.CycleCount >= c.settings.MaxScrolls {
			LogInfo("Scroll limit reached (%d cycles)", c.state.CycleCount)
			break
		}
		if c.ledger.Size() >= c.settings.MaxMessages {
			LogInfo("Message limit reached (%d fingerprints)", c.ledger.Size())
			break
		}
		if ctx.Err() != nil {
			LogInfo("Stop requested, ending after %d cycle(s)", c.state.CycleCount)
			break
		}

		c.runCycle(ctx)
	}

	summary := Summary{
		Channel:            c.channel,
		Cycles:             c.state.CycleCount,
		TotalEmitted:       c.state.TotalEmitted,
		UniqueParticipants: c.participants.Size(),
	}
	if err := c.sink.Summarize(summary); err != nil {
		LogWarn("Failed to record summary: %v", err)
	}
	return summary, nil
}

// runCycle performs one full poll -> extract -> decide -> wait iteration.
// Every failure inside it is cycle-scoped.
func (c *Controller) runCycle(ctx context.Context) {
	batch, err := c.surface.CurrentBatch(ctx)
	if err != nil {
		// Snapshot failed: keep the current backoff untouched rather than
		// feeding a phantom batch size into the stall heuristic.
		LogWarn("Cycle %d: batch snapshot failed: %v", c.state.CycleCount, err)
	} else {
		accepted := c.extract(batch)
		c.decide(len(batch))
		LogInfo("Cycle %d: batch=%d accepted=%d total=%d wait=%dms",
			c.state.CycleCount, len(batch), accepted, c.state.TotalEmitted, c.state.WaitMs)
	}

	c.sleep(ctx, time.Duration(c.state.WaitMs)*time.Millisecond)

	if err := c.surface.ResetToTop(ctx); err != nil {
		LogWarn("Cycle %d: %v", c.state.CycleCount, &TransientError{Op: "reset", Err: err})
	}
	c.sleep(ctx, c.settings.ScrollSettle())

	c.state.CycleCount++
}

// extract normalizes, deduplicates, and emits one batch in order.
// Returns the number of newly accepted records, which is logged so the
// raw-batch-size stall heuristic's blind spots stay observable.
func (c *Controller) extract(batch []RawNode) int {
	accepted := 0
	for i := range batch {
		record, err := c.normalizer.Normalize(&batch[i])
		if err != nil {
			var extractionErr *ExtractionError
			if errors.As(err, &extractionErr) {
				extractionErr.Index = i
				LogWarn("Skipping node: %v", extractionErr)
				if extractionErr.Markup != "" {
					LogDebug("Node %d markup: %s", i, extractionErr.Markup)
				}
			} else {
				LogWarn("Skipping node %d: %v", i, err)
			}
			continue
		}
		if record.Body == "" {
			continue
		}

		fingerprint := record.Fingerprint()
		if c.ledger.HasSeen(fingerprint) {
			continue
		}

		// At-most-once delivery: the fingerprint is marked seen before the
		// write, so a failed Append drops that line for the run.
		c.ledger.Record(fingerprint)
		c.participants.Add(record.Sender)
		if err := c.sink.Append(record); err != nil {
			LogWarn("Record dropped: %v", err)
		}
		c.state.TotalEmitted++
		accepted++
	}
	return accepted
}

// decide updates the backoff from the raw batch size. An unchanged size is
// treated as a stalled feed and lengthens the wait, uncapped; any change,
// growth or shrink, resets it. The rendered-node count is an imprecise
// proxy for progress in a virtualized list; the per-cycle accepted count
// is logged so stalls the heuristic misreads stay visible.
func (c *Controller) decide(batchSize int) {
	if batchSize == c.state.PreviousBatchSize {
		c.state.WaitMs += c.settings.WaitIncrementMs
	} else {
		c.state.WaitMs = c.settings.DefaultWaitMs
	}
	c.state.PreviousBatchSize = batchSize
}

// sleepContext waits for the duration or until the context is canceled
func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
