package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// RunState is the persisted dedup state of a previous run, used to avoid
// re-emitting lines when resuming against the same channel
type RunState struct {
	Channel      string    `yaml:"channel,omitempty"`
	SavedAt      time.Time `yaml:"saved_at"`
	Fingerprints []string  `yaml:"fingerprints,omitempty"`
	Participants []string  `yaml:"participants,omitempty"`
}

// DefaultStateFile returns the state file path for a channel
func DefaultStateFile(channel string) string {
	return filepath.Join(os.TempDir(), "chat-snare", fmt.Sprintf("state-%s.yaml", channel))
}

// LoadRunState reads a state file. A missing file yields an empty state.
func LoadRunState(path string) (RunState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunState{}, nil
		}
		return RunState{}, fmt.Errorf("failed to read state file: %w", err)
	}
	var state RunState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return RunState{}, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	return state, nil
}

// SaveRunState writes a state file atomically (temp file then rename)
func SaveRunState(path string, state RunState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	_ = os.Remove(path)
	return os.Rename(tmp, path)
}

// SeedLedger builds a Ledger preloaded with the state's fingerprints
func (s RunState) SeedLedger() *Ledger {
	ledger := NewLedger()
	for _, fp := range s.Fingerprints {
		ledger.Record(fp)
	}
	return ledger
}

// SeedParticipants builds a Participants set preloaded from the state
func (s RunState) SeedParticipants() *Participants {
	participants := NewParticipants()
	for _, name := range s.Participants {
		participants.Add(name)
	}
	return participants
}

// CaptureRunState snapshots a finished controller's dedup state
func CaptureRunState(channel string, ledger *Ledger, participants *Participants) RunState {
	return RunState{
		Channel:      channel,
		SavedAt:      time.Now(),
		Fingerprints: ledger.Fingerprints(),
		Participants: participants.Names(),
	}
}
