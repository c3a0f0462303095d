package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-snare/internal"
	"github.com/iksnae/chat-snare/internal/surface"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check if chat-snare can run a capture",
	Long: `Check the capture environment by verifying:
  • Browser binary resolution (including the ` + internal.BrowserEnvVar + ` override)
  • Settings file validity
  • Working directory writability

Useful for debugging setup issues, especially in containers and CI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 chat-snare Doctor"))
		fmt.Println()

		healthy := true

		fmt.Println(infoStyle.Render("Step 1: Resolving browser binary..."))
		if path, err := surface.DetectBrowser(); err == nil {
			fmt.Println(successStyle.Render("✅ Browser found"))
			fmt.Printf("   %s\n", path)
		} else {
			healthy = false
			fmt.Println(errorStyle.Render("❌ No browser binary found"))
			fmt.Printf("   %v\n", err)
		}
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 2: Loading settings..."))
		settings, err := loadSettings()
		if err != nil {
			healthy = false
			fmt.Println(errorStyle.Render("❌ Settings invalid"))
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Println(successStyle.Render("✅ Settings valid"))
			fmt.Printf("   max_scrolls=%d max_messages=%d default_wait_ms=%d\n",
				settings.MaxScrolls, settings.MaxMessages, settings.DefaultWaitMs)
		}
		fmt.Println()

		fmt.Println(infoStyle.Render("Step 3: Checking output writability..."))
		if dir, err := os.Getwd(); err == nil {
			probe := filepath.Join(dir, ".chat-snare-doctor")
			if err := os.WriteFile(probe, []byte("ok"), 0644); err == nil {
				_ = os.Remove(probe)
				fmt.Println(successStyle.Render("✅ Working directory writable"))
			} else {
				healthy = false
				fmt.Println(errorStyle.Render("❌ Working directory not writable"))
				fmt.Printf("   %v\n", err)
			}
		} else {
			healthy = false
			fmt.Println(errorStyle.Render("❌ Cannot resolve working directory"))
		}
		fmt.Println()

		if !healthy {
			fmt.Println(warningStyle.Render("⚠️  Fix the issues above before running a capture"))
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✅ Ready to capture"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
