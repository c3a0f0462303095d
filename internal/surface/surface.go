// Package surface attaches to a live channel chat page in an automated
// Chrome session and exposes it as an ordered feed of raw message nodes.
package surface

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/iksnae/chat-snare/internal"
)

// Chat page selectors. The chat column is a virtualized list: only the
// currently rendered window of messages exists in the DOM at any moment.
const (
	chatContainerSelector = `[data-test-selector="chat-scrollable-area__message-container"]`
	chatMessageSelector   = `.chat-line__message`
	consentButtonSelector = `button[data-a-target="consent-banner-accept"]`
)

const consentTimeout = 5 * time.Second

// Options configures a feed surface session
type Options struct {
	ChannelURL    string
	BrowserPath   string // empty means chromedp's default lookup
	Headless      bool
	LocateTimeout time.Duration
}

// Session is one exclusive handle on the feed surface. Released exactly
// once via Close, on both normal termination and the hard-stop path.
type Session struct {
	url         string
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	closeOnce   sync.Once
}

// Locate starts the browser session, navigates to the channel page,
// dismisses the consent dialog if one appears, and waits for the chat
// container to render. Failure to locate the container is fatal for the
// run and returns a SurfaceError; the partially-acquired session is
// released before returning.
func Locate(ctx context.Context, opts Options) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("mute-audio", true),
	)
	if opts.BrowserPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.BrowserPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		url:         opts.ChannelURL,
		ctx:         browserCtx,
		cancel:      browserCancel,
		allocCancel: allocCancel,
	}

	if err := chromedp.Run(browserCtx, chromedp.Navigate(opts.ChannelURL)); err != nil {
		s.Close()
		return nil, &internal.SurfaceError{Op: "locate", URL: opts.ChannelURL, Err: err}
	}

	s.dismissConsent()

	locateCtx, locateCancel := context.WithTimeout(browserCtx, opts.LocateTimeout)
	defer locateCancel()
	if err := chromedp.Run(locateCtx,
		chromedp.WaitVisible(chatContainerSelector, chromedp.ByQuery),
	); err != nil {
		s.Close()
		return nil, &internal.SurfaceError{Op: "locate", URL: opts.ChannelURL, Err: err}
	}

	internal.LogInfo("Chat surface located at %s", opts.ChannelURL)
	return s, nil
}

// dismissConsent clicks through the consent dialog when present.
// Its absence is the common case and never an error.
func (s *Session) dismissConsent() {
	consentCtx, cancel := context.WithTimeout(s.ctx, consentTimeout)
	defer cancel()
	err := chromedp.Run(consentCtx,
		chromedp.WaitVisible(consentButtonSelector, chromedp.ByQuery),
		chromedp.Click(consentButtonSelector, chromedp.ByQuery),
	)
	if err != nil {
		internal.LogDebug("No consent dialog dismissed: %v", err)
		return
	}
	internal.LogInfo("Consent dialog dismissed")
}

// CurrentBatch snapshots the currently rendered message elements, in
// render order. A node whose markup cannot be parsed still occupies its
// slot in the batch (with markup only), so the batch size stays faithful
// to the rendered count the backoff heuristic keys on.
func (s *Session) CurrentBatch(ctx context.Context) ([]internal.RawNode, error) {
	script := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(function(n) { return n.outerHTML; })`,
		chatMessageSelector,
	)

	var markups []string
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, &markups)); err != nil {
		return nil, &internal.SurfaceError{Op: "snapshot", URL: s.url, Err: err}
	}

	nodes := make([]internal.RawNode, 0, len(markups))
	for i, markup := range markups {
		node, err := ParseNode(markup)
		if err != nil {
			internal.LogWarn("Cycle snapshot: %v", &internal.ExtractionError{Index: i, Markup: markup, Err: err})
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// ResetToTop issues the feed's own scroll-to-top action so the
// virtualized list re-renders from the head
func (s *Session) ResetToTop(ctx context.Context) error {
	script := fmt.Sprintf(
		`(function() { var c = document.querySelector(%q); if (c) { c.scrollTop = 0; } })()`,
		chatContainerSelector,
	)
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, nil)); err != nil {
		return &internal.SurfaceError{Op: "reset", URL: s.url, Err: err}
	}
	return nil
}

// Close releases the browser session. Safe to call more than once;
// only the first call has effect.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.ctx); err != nil {
			internal.LogDebug("Browser shutdown: %v", err)
		}
		s.cancel()
		s.allocCancel()
	})
}

// ChannelURL expands a bare channel name into the full channel page URL.
// Anything already carrying a scheme passes through untouched.
func ChannelURL(channel string) string {
	channel = strings.TrimSpace(channel)
	if strings.Contains(channel, "://") {
		return channel
	}
	return "https://www.twitch.tv/" + strings.TrimPrefix(channel, "/")
}
