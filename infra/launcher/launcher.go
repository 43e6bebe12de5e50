package launcher

import (
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
)

// Launcher hands URLs to programs outside the terminal UI. Media goes to the
// configured player command, or to the system browser when none is set.
// It does NOT block: callers get tea.Cmds so Bubble Tea can suspend raw
// terminal mode while a player runs in the foreground.
type Launcher struct {
	player  []string
	openURL func(string) error
}

// New creates a Launcher. player is a command line such as "mpv --loop";
// the URL is appended as the last argument.
func New(player string) *Launcher {
	return &Launcher{
		player:  strings.Fields(player),
		openURL: browser.OpenURL,
	}
}

// FinishedMsg reports the outcome of Play or Open.
type FinishedMsg struct {
	URL string
	Err error
}

// PlayerCmd prepares the player command for rawURL. ok is false when no
// player is configured.
func (l *Launcher) PlayerCmd(rawURL string) (cmd *exec.Cmd, ok bool) {
	if len(l.player) == 0 {
		return nil, false
	}
	args := append(append([]string{}, l.player[1:]...), rawURL)
	return exec.Command(l.player[0], args...), true
}

// Play opens rawURL in the player, falling back to the browser.
func (l *Launcher) Play(rawURL string) tea.Cmd {
	if !IsSafeExternalURL(rawURL) {
		return finished(rawURL, fmt.Errorf("refusing to open %q", rawURL))
	}
	cmd, ok := l.PlayerCmd(rawURL)
	if !ok {
		return l.Open(rawURL)
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			err = fmt.Errorf("running %s: %w", l.player[0], err)
		}
		return FinishedMsg{URL: rawURL, Err: err}
	})
}

// Open shows rawURL in the system browser.
func (l *Launcher) Open(rawURL string) tea.Cmd {
	if !IsSafeExternalURL(rawURL) {
		return finished(rawURL, fmt.Errorf("refusing to open %q", rawURL))
	}
	open := l.openURL
	return func() tea.Msg {
		if err := open(rawURL); err != nil {
			return FinishedMsg{URL: rawURL, Err: fmt.Errorf("opening browser: %w", err)}
		}
		return FinishedMsg{URL: rawURL}
	}
}

func finished(rawURL string, err error) tea.Cmd {
	return func() tea.Msg { return FinishedMsg{URL: rawURL, Err: err} }
}

// IsSafeExternalURL accepts absolute http and https URLs only.
func IsSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
