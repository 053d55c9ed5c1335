package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	apperrors "github.com/killallgit/moviepreview/pkg/errors"
)

// ErrNoPlayer is returned when no external player could be started
var ErrNoPlayer = errors.New("no media player available")

// Runner starts external processes. Swapped out in tests.
type Runner interface {
	LookPath(file string) (string, error)
	Start(name string, args ...string) error
	Run(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Start launches the process without waiting for it to exit
func (execRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Run waits for the process to exit and reports its status
func (execRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// launchPath is a single way to start a player. Paths prefixed with "open-a:"
// go through macOS `open -a <App>`, which exits non-zero when the app is missing.
type launchPath struct {
	path      string
	openFlags []string
}

// players maps a player name to its launch paths per platform
var players = map[string]map[string][]launchPath{
	"mpv": {
		"darwin":  {{path: "mpv"}},
		"linux":   {{path: "mpv"}},
		"windows": {{path: "mpv"}},
	},
	"vlc": {
		"darwin":  {{path: "vlc"}, {path: "open-a:VLC"}},
		"linux":   {{path: "vlc"}},
		"windows": {{path: "vlc"}},
	},
	"iina": {
		"darwin": {{path: "open-a:IINA", openFlags: []string{"-n"}}},
	},
	"celluloid": {
		"linux": {{path: "celluloid"}},
	},
	"potplayer": {
		"windows": {{path: "PotPlayerMini64.exe"}, {path: "PotPlayerMini.exe"}},
	},
}

// candidatePlayers is the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "vlc", "mpv"},
	"linux":   {"mpv", "celluloid", "vlc"},
	"windows": {"vlc", "mpv", "potplayer"},
}

// systemOpeners hand a URL to whatever the desktop has registered
var systemOpeners = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// Launcher hands preview URLs to an external media player
type Launcher struct {
	command string   // configured player command, empty for auto-detect
	args    []string // extra arguments placed before the URL
	goos    string
	runner  Runner
	logger  *slog.Logger
}

// LauncherOption customizes a Launcher
type LauncherOption func(*Launcher)

// WithRunner replaces the process runner
func WithRunner(r Runner) LauncherOption {
	return func(l *Launcher) { l.runner = r }
}

// WithPlatform overrides runtime.GOOS for player detection
func WithPlatform(goos string) LauncherOption {
	return func(l *Launcher) { l.goos = goos }
}

// NewLauncher creates a Launcher. With an empty command the platform's known
// players are probed in order, then the system URL opener.
func NewLauncher(command string, args []string, logger *slog.Logger, opts ...LauncherOption) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	l := &Launcher{
		command: strings.TrimSpace(command),
		args:    args,
		goos:    runtime.GOOS,
		runner:  execRunner{},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts a player for url and returns the name of the player used
func (l *Launcher) Launch(url string) (string, error) {
	if l.command != "" {
		if _, err := l.runner.LookPath(l.command); err != nil {
			return "", apperrors.ExternalServiceError("player", fmt.Errorf("%s: %w", l.command, err))
		}
		if err := l.runner.Start(l.command, l.withURL(url)...); err != nil {
			return "", apperrors.ExternalServiceError("player", err)
		}
		return playerName(l.command), nil
	}

	if name, ok := l.detectAndLaunch(url); ok {
		return name, nil
	}

	if opener, ok := systemOpeners[l.goos]; ok {
		if _, err := l.runner.LookPath(opener[0]); err == nil {
			args := append(append([]string{}, opener[1:]...), url)
			if err := l.runner.Start(opener[0], args...); err == nil {
				l.logger.Debug("opened preview with system handler", "opener", opener[0])
				return opener[0], nil
			}
		}
	}

	return "", apperrors.ExternalServiceError("player", ErrNoPlayer)
}

// detectAndLaunch tries candidate players in order
func (l *Launcher) detectAndLaunch(url string) (string, bool) {
	candidates, ok := candidatePlayers[l.goos]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		paths, ok := players[name][l.goos]
		if !ok {
			l.logger.Debug("player not available on this platform", "player", name, "platform", l.goos)
			continue
		}

		for _, p := range paths {
			var err error
			if app, isApp := strings.CutPrefix(p.path, "open-a:"); isApp {
				args := append(append([]string{}, p.openFlags...), "-a", app)
				if len(l.args) > 0 {
					args = append(append(args, "--args"), l.args...)
				}
				args = append(args, url)
				err = l.runner.Run("open", args...)
			} else if _, err = l.runner.LookPath(p.path); err == nil {
				err = l.runner.Start(p.path, l.withURL(url)...)
			}

			if err == nil {
				l.logger.Info("launched preview", "player", name)
				return name, true
			}
			l.logger.Debug("player launch failed", "player", name, "path", p.path, "error", err)
		}
	}

	return "", false
}

func (l *Launcher) withURL(url string) []string {
	args := make([]string, 0, len(l.args)+1)
	args = append(args, l.args...)
	return append(args, url)
}

func playerName(command string) string {
	base := filepath.Base(command)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
