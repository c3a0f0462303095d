package surface

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/iksnae/chat-snare/internal"
)

// DetectBrowser resolves the browser binary the session should launch.
// The CHAT_SNARE_BROWSER environment variable wins; otherwise standard
// install locations and PATH names are tried per OS. An empty result with
// nil error never occurs: either a path comes back or an error does.
func DetectBrowser() (string, error) {
	if path := os.Getenv(internal.BrowserEnvVar); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s points to %s: %w", internal.BrowserEnvVar, path, err)
		}
		return path, nil
	}

	for _, candidate := range browserCandidates() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no Chrome or Chromium binary found (set %s to override)", internal.BrowserEnvVar)
}

// browserCandidates returns the standard install locations for the
// current operating system
func browserCandidates() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	case "windows":
		return []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		}
	default:
		return []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	}
}
