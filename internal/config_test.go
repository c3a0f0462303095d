package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.MaxScrolls != 50 {
		t.Errorf("MaxScrolls = %d, want 50", s.MaxScrolls)
	}
	if s.MaxMessages != 1000 {
		t.Errorf("MaxMessages = %d, want 1000", s.MaxMessages)
	}
	if s.DefaultWaitMs != 10000 {
		t.Errorf("DefaultWaitMs = %d, want 10000", s.DefaultWaitMs)
	}
	if s.WaitIncrementMs != 5000 {
		t.Errorf("WaitIncrementMs = %d, want 5000", s.WaitIncrementMs)
	}
	if s.ScrollSettleMs != 2000 {
		t.Errorf("ScrollSettleMs = %d, want 2000", s.ScrollSettleMs)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestLoadSettings_EmptyPathReturnsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings(\"\") error = %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("LoadSettings(\"\") = %+v, want defaults", s)
	}
}

func TestLoadSettings_FileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "max_scrolls: 5\ndefault_wait_ms: 250\nformat: jsonl\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.MaxScrolls != 5 {
		t.Errorf("MaxScrolls = %d, want 5", s.MaxScrolls)
	}
	if s.DefaultWaitMs != 250 {
		t.Errorf("DefaultWaitMs = %d, want 250", s.DefaultWaitMs)
	}
	if s.Format != "jsonl" {
		t.Errorf("Format = %q, want jsonl", s.Format)
	}
	// Untouched keys keep their defaults
	if s.MaxMessages != 1000 {
		t.Errorf("MaxMessages = %d, want default 1000", s.MaxMessages)
	}
}

func TestLoadSettings_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("max_scrolls: [not a number"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("LoadSettings() of malformed YAML should fail")
	}
}

func TestSettings_ApplyEnv(t *testing.T) {
	t.Setenv(BrowserEnvVar, "/opt/chromium/chrome")

	s := DefaultSettings()
	s.ApplyEnv()
	if s.BrowserPath != "/opt/chromium/chrome" {
		t.Errorf("BrowserPath = %q, want env override", s.BrowserPath)
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults valid", func(s *Settings) {}, false},
		{"zero max scrolls", func(s *Settings) { s.MaxScrolls = 0 }, true},
		{"negative max messages", func(s *Settings) { s.MaxMessages = -1 }, true},
		{"zero default wait", func(s *Settings) { s.DefaultWaitMs = 0 }, true},
		{"negative increment", func(s *Settings) { s.WaitIncrementMs = -1 }, true},
		{"zero increment allowed", func(s *Settings) { s.WaitIncrementMs = 0 }, false},
		{"negative settle", func(s *Settings) { s.ScrollSettleMs = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
