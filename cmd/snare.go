package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/iksnae/chat-snare/internal"
	"github.com/iksnae/chat-snare/internal/sink"
	"github.com/iksnae/chat-snare/internal/surface"
	"github.com/spf13/cobra"
)

var (
	outputFile    string
	outputFormat  string
	maxScrolls    int
	maxMessages   int
	defaultWait   int
	waitIncrement int
	scrollSettle  int
	headless      bool
	browserPath   string
	resume        bool
	stateFile     string
)

// snareCmd represents the snare command
var snareCmd = &cobra.Command{
	Use:   "snare [channel]",
	Short: "Capture a channel's live chat",
	Long: `Capture a channel's live chat into an append-only transcript.

The channel can be a bare name or a full URL. When omitted, it is prompted
for interactively, as is the output file (defaulted from the channel name,
extension corrected to match the format).

The run ends after the scroll limit, the message limit, or Ctrl-C; the
current cycle always finishes before a requested stop takes effect.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, &settings)

		stdin := bufio.NewReader(os.Stdin)

		channel := ""
		if len(args) > 0 {
			channel = strings.TrimSpace(args[0])
		}
		if channel == "" {
			channel, err = promptLine(stdin, "Channel (name or URL): ")
			if err != nil {
				return err
			}
		}
		if channel == "" {
			return fmt.Errorf("no channel given")
		}
		channelName := channelShortName(channel)

		out := outputFile
		if out == "" {
			prompt := fmt.Sprintf("Output file [%s.%s]: ", channelName, sink.Extension(settings.Format))
			out, err = promptLine(stdin, prompt)
			if err != nil {
				return err
			}
		}
		if out == "" {
			out = channelName
		}
		out = ensureExtension(out, sink.Extension(settings.Format))

		return runSnare(channelName, surface.ChannelURL(channel), out, settings)
	},
}

// runSnare owns the surface handle and the sink for one extraction run.
// Both are released on every path out, including the hard-stop locate
// failure and Ctrl-C.
func runSnare(channel, channelURL, out string, settings internal.Settings) error {
	snk, err := sink.New(settings.Format, out)
	if err != nil {
		return err
	}
	defer func() {
		if err := snk.Close(); err != nil {
			internal.LogWarn("Failed to close output: %v", err)
		}
	}()

	opts := []internal.ControllerOption{internal.WithChannel(channel)}
	statePath := stateFile
	if statePath == "" {
		statePath = internal.DefaultStateFile(channel)
	}
	if settings.Resume {
		state, err := internal.LoadRunState(statePath)
		if err != nil {
			internal.LogWarn("Resume state unavailable, starting fresh: %v", err)
		} else if len(state.Fingerprints) > 0 {
			internal.LogInfo("Resuming with %d known fingerprint(s)", len(state.Fingerprints))
			opts = append(opts, internal.WithLedger(state.SeedLedger()), internal.WithParticipants(state.SeedParticipants()))
		}
	}

	// Stop requests take effect at the next cycle boundary
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if settings.BrowserPath == "" {
		if detected, err := surface.DetectBrowser(); err == nil {
			settings.BrowserPath = detected
		} else {
			internal.LogDebug("Browser detection: %v (falling back to the session default)", err)
		}
	}

	sess, err := surface.Locate(ctx, surface.Options{
		ChannelURL:    channelURL,
		BrowserPath:   settings.BrowserPath,
		Headless:      settings.Headless,
		LocateTimeout: settings.LocateTimeout(),
	})
	if err != nil {
		// Hard stop: the feed surface never appeared
		return err
	}
	defer sess.Close()

	// Let the freshly-loaded page finish its initial render burst
	time.Sleep(time.Duration(settings.ScrollDelayMs) * time.Millisecond)

	internal.LogInfo("Capturing %s -> %s (max %d cycles, %d messages)",
		channel, out, settings.MaxScrolls, settings.MaxMessages)

	controller := internal.NewController(sess, snk, settings, opts...)
	summary, err := controller.Run(ctx)
	if err != nil {
		return err
	}

	if settings.Resume {
		state := internal.CaptureRunState(channel, controller.Ledger(), controller.Participants())
		if err := internal.SaveRunState(statePath, state); err != nil {
			internal.LogWarn("Failed to save resume state: %v", err)
		}
	}

	fmt.Println(internal.RenderSummary(summary))
	return nil
}

// applyFlagOverrides copies explicitly-set flags over the loaded settings
func applyFlagOverrides(cmd *cobra.Command, settings *internal.Settings) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		settings.Format = outputFormat
	}
	if flags.Changed("max-scrolls") {
		settings.MaxScrolls = maxScrolls
	}
	if flags.Changed("max-messages") {
		settings.MaxMessages = maxMessages
	}
	if flags.Changed("wait") {
		settings.DefaultWaitMs = defaultWait
	}
	if flags.Changed("wait-increment") {
		settings.WaitIncrementMs = waitIncrement
	}
	if flags.Changed("settle") {
		settings.ScrollSettleMs = scrollSettle
	}
	if flags.Changed("headless") {
		settings.Headless = headless
	}
	if flags.Changed("browser") {
		settings.BrowserPath = browserPath
	}
	if flags.Changed("resume") {
		settings.Resume = resume
	}
}

// promptLine reads one trimmed line from the reader
func promptLine(r *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// channelShortName reduces a channel name or URL to its bare name,
// usable as a default file name
func channelShortName(channel string) string {
	channel = strings.TrimSpace(channel)
	if idx := strings.Index(channel, "://"); idx >= 0 {
		channel = channel[idx+3:]
	}
	channel = strings.Trim(channel, "/")
	if idx := strings.LastIndex(channel, "/"); idx >= 0 {
		channel = channel[idx+1:]
	}
	if channel == "" {
		return "chat"
	}
	return channel
}

// ensureExtension corrects a file name to carry the sink's extension
func ensureExtension(name, ext string) string {
	want := "." + ext
	if strings.EqualFold(filepath.Ext(name), want) {
		return name
	}
	return name + want
}

func init() {
	rootCmd.AddCommand(snareCmd)
	snareCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output file (extension corrected to the format)")
	snareCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format (text, jsonl, sqlite)")
	snareCmd.Flags().IntVar(&maxScrolls, "max-scrolls", 0, "Cycle limit")
	snareCmd.Flags().IntVar(&maxMessages, "max-messages", 0, "Message limit")
	snareCmd.Flags().IntVar(&defaultWait, "wait", 0, "Default wait between cycles (ms)")
	snareCmd.Flags().IntVar(&waitIncrement, "wait-increment", 0, "Backoff step when the feed stalls (ms)")
	snareCmd.Flags().IntVar(&scrollSettle, "settle", 0, "Re-render pause after the scroll reset (ms)")
	snareCmd.Flags().BoolVar(&headless, "headless", true, "Run the browser headless")
	snareCmd.Flags().StringVar(&browserPath, "browser", "", "Browser binary (overrides detection)")
	snareCmd.Flags().BoolVar(&resume, "resume", false, "Carry over fingerprints from the previous run")
	snareCmd.Flags().StringVar(&stateFile, "state-file", "", "Resume state location")
}
