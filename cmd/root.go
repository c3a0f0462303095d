package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chat-snare/internal"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chat-snare",
	Short: "Capture live channel chat into an append-only transcript",
	Long: `A CLI tool that attaches to a live channel chat page in an automated
Chrome session, incrementally extracts messages as they render, deduplicates
them, and appends them to an ordered transcript.

The loop adapts its polling cadence to the feed: when the rendered message
count stalls, it backs off; when the feed moves again, it speeds back up.

Features:
  • Dedup by content fingerprint: re-rendered messages are never re-emitted
  • Emote-aware normalization ([emoteName] placeholders inline with text)
  • text, jsonl, and sqlite output formats
  • Resumable: previous runs' fingerprints can be carried over
  • Bounded runs: stops at a cycle limit or a message limit

Quick Start:
  chat-snare snare somechannel           # Capture chat to somechannel.txt
  chat-snare probe somechannel           # One snapshot, no capture
  chat-snare doctor                      # Verify browser and config setup`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env next to the working directory; absence is normal
		_ = godotenv.Load()
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (YAML)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadSettings layers defaults, the optional config file, and the
// environment, in that order
func loadSettings() (internal.Settings, error) {
	settings, err := internal.LoadSettings(configPath)
	if err != nil {
		return settings, err
	}
	settings.ApplyEnv()
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}
