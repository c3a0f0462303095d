package internal

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BrowserEnvVar overrides the browser binary used for the feed surface
const BrowserEnvVar = "CHAT_SNARE_BROWSER"

// Settings holds every adjustable parameter of the extraction loop
type Settings struct {
	// Loop bounds and cadence
	MaxScrolls      int `yaml:"max_scrolls"`       // cycle limit
	MaxMessages     int `yaml:"max_messages"`      // ledger size limit
	DefaultWaitMs   int `yaml:"default_wait_ms"`   // wait after a cycle that saw growth
	WaitIncrementMs int `yaml:"wait_increment_ms"` // backoff step when the batch size stalls
	ScrollSettleMs  int `yaml:"scroll_settle_ms"`  // re-render pause after the scroll reset
	ScrollDelayMs   int `yaml:"scroll_delay_ms"`   // pause after page load, before the first cycle

	// Feed surface
	LocateTimeoutMs int    `yaml:"locate_timeout_ms"` // how long to wait for the chat container
	Headless        bool   `yaml:"headless"`
	BrowserPath     string `yaml:"browser_path,omitempty"`

	// Output
	Format    string `yaml:"format,omitempty"`     // text, jsonl, sqlite
	Resume    bool   `yaml:"resume,omitempty"`     // preload the ledger from the state file
	StateFile string `yaml:"state_file,omitempty"` // resume state location
}

// DefaultSettings returns the built-in defaults
func DefaultSettings() Settings {
	return Settings{
		MaxScrolls:      50,
		MaxMessages:     1000,
		DefaultWaitMs:   10000,
		WaitIncrementMs: 5000,
		ScrollSettleMs:  2000,
		ScrollDelayMs:   3000,
		LocateTimeoutMs: 30000,
		Headless:        true,
		Format:          "text",
	}
}

// LoadSettings overlays a YAML config file on the defaults.
// An empty path returns the defaults unchanged.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return settings, nil
}

// ApplyEnv applies environment overrides on top of file and defaults
func (s *Settings) ApplyEnv() {
	if path := os.Getenv(BrowserEnvVar); path != "" {
		s.BrowserPath = path
	}
}

// Validate rejects settings the loop cannot run with
func (s Settings) Validate() error {
	if s.MaxScrolls <= 0 {
		return fmt.Errorf("max_scrolls must be positive, got %d", s.MaxScrolls)
	}
	if s.MaxMessages <= 0 {
		return fmt.Errorf("max_messages must be positive, got %d", s.MaxMessages)
	}
	if s.DefaultWaitMs <= 0 {
		return fmt.Errorf("default_wait_ms must be positive, got %d", s.DefaultWaitMs)
	}
	if s.WaitIncrementMs < 0 {
		return fmt.Errorf("wait_increment_ms must not be negative, got %d", s.WaitIncrementMs)
	}
	if s.ScrollSettleMs < 0 {
		return fmt.Errorf("scroll_settle_ms must not be negative, got %d", s.ScrollSettleMs)
	}
	return nil
}

// DefaultWait returns the default inter-cycle wait as a duration
func (s Settings) DefaultWait() time.Duration {
	return time.Duration(s.DefaultWaitMs) * time.Millisecond
}

// ScrollSettle returns the post-reset settle pause as a duration
func (s Settings) ScrollSettle() time.Duration {
	return time.Duration(s.ScrollSettleMs) * time.Millisecond
}

// LocateTimeout returns the surface locate timeout as a duration
func (s Settings) LocateTimeout() time.Duration {
	return time.Duration(s.LocateTimeoutMs) * time.Millisecond
}
