package internal

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestRunState_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "state-somechannel.yaml")

	ledger := NewLedger()
	ledger.Record("fp-one")
	ledger.Record("fp-two")
	participants := NewParticipants()
	participants.Add("alice")

	state := CaptureRunState("somechannel", ledger, participants)
	if err := SaveRunState(path, state); err != nil {
		t.Fatalf("SaveRunState() error = %v", err)
	}

	loaded, err := LoadRunState(path)
	if err != nil {
		t.Fatalf("LoadRunState() error = %v", err)
	}
	if loaded.Channel != "somechannel" {
		t.Errorf("Channel = %q, want somechannel", loaded.Channel)
	}
	if !reflect.DeepEqual(loaded.Fingerprints, []string{"fp-one", "fp-two"}) {
		t.Errorf("Fingerprints = %v, want [fp-one fp-two]", loaded.Fingerprints)
	}
	if !reflect.DeepEqual(loaded.Participants, []string{"alice"}) {
		t.Errorf("Participants = %v, want [alice]", loaded.Participants)
	}
}

func TestLoadRunState_MissingFile(t *testing.T) {
	state, err := LoadRunState(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadRunState() of missing file error = %v, want nil", err)
	}
	if len(state.Fingerprints) != 0 {
		t.Errorf("missing file should yield empty state, got %v", state.Fingerprints)
	}
}

func TestRunState_Seeding(t *testing.T) {
	state := RunState{
		Fingerprints: []string{"fp-one"},
		Participants: []string{"alice", "bob"},
	}

	ledger := state.SeedLedger()
	if !ledger.HasSeen("fp-one") || ledger.Size() != 1 {
		t.Errorf("seeded ledger missing fingerprints: size=%d", ledger.Size())
	}

	participants := state.SeedParticipants()
	if participants.Size() != 2 {
		t.Errorf("seeded participants size = %d, want 2", participants.Size())
	}
}
