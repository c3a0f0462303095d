package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-snare/internal"
	"github.com/iksnae/chat-snare/internal/surface"
	"github.com/spf13/cobra"
)

var probeSampleSize int

var (
	probeSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	probeWarningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Bold(true)

	probeInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	probeSectionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("62")).
				Bold(true).
				Underline(true)
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe <channel>",
	Short: "Take one snapshot of a channel's chat without capturing",
	Long: `Probe locates the chat surface, takes a single batch snapshot, and
reports what it saw: rendered node count, how many nodes normalize cleanly,
and a sample of the resulting transcript lines.

Useful for verifying selectors and browser setup before a long capture.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		channelURL := surface.ChannelURL(args[0])
		fmt.Println(probeSectionStyle.Render("🔍 Chat Surface Probe"))
		fmt.Println(probeInfoStyle.Render("Target: " + channelURL))
		fmt.Println()

		if settings.BrowserPath == "" {
			if detected, err := surface.DetectBrowser(); err == nil {
				settings.BrowserPath = detected
			}
		}

		ctx := context.Background()
		sess, err := surface.Locate(ctx, surface.Options{
			ChannelURL:    channelURL,
			BrowserPath:   settings.BrowserPath,
			Headless:      settings.Headless,
			LocateTimeout: settings.LocateTimeout(),
		})
		if err != nil {
			return err
		}
		defer sess.Close()
		fmt.Println(probeSuccessStyle.Render("✅ Chat surface located"))

		batch, err := sess.CurrentBatch(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s %d rendered node(s)\n", probeInfoStyle.Render("Snapshot:"), len(batch))

		normalizer := internal.NewNormalizer()
		shown := 0
		failed := 0
		empty := 0
		for i := range batch {
			record, err := normalizer.Normalize(&batch[i])
			if err != nil {
				failed++
				continue
			}
			if record.Body == "" {
				empty++
				continue
			}
			if shown < probeSampleSize {
				fmt.Printf("  %s\n", record.Line())
				shown++
			}
		}

		fmt.Println()
		if failed > 0 {
			fmt.Println(probeWarningStyle.Render(fmt.Sprintf("⚠️  %d node(s) failed to normalize", failed)))
		}
		if empty > 0 {
			fmt.Println(probeInfoStyle.Render(fmt.Sprintf("%d node(s) normalized empty (suppressed in capture)", empty)))
		}
		fmt.Println(probeSuccessStyle.Render(fmt.Sprintf("✅ %d node(s) would be captured", len(batch)-failed-empty)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeSampleSize, "sample", 5, "Transcript lines to print from the snapshot")
}
