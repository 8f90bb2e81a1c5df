package adapter

import (
	"errors"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mmcdole/tubes/internal/domain"
)

// ErrNoPlayer is returned when no candidate player could be started
var ErrNoPlayer = errors.New("no video player found")

// Launcher opens watch URLs in an external player
type Launcher struct {
	command string   // Configured player, empty to auto-detect
	args    []string // Extra arguments placed before the URL
	logger  *slog.Logger

	// start runs a command without waiting for it; replaced in tests
	start func(name string, args ...string) error
	// lookPath resolves a command in PATH; replaced in tests
	lookPath func(name string) (string, error)
}

// playerInfo describes a player that can stream a watch URL directly
type playerInfo struct {
	titleFlag string              // Sets the window title, e.g. "--force-media-title="
	platforms map[string][]string // GOOS -> commands to try in order; "open-a:App" uses macOS open
}

var players = map[string]playerInfo{
	"mpv": {
		titleFlag: "--force-media-title=",
		platforms: map[string][]string{
			"darwin":  {"mpv"},
			"linux":   {"mpv"},
			"windows": {"mpv"},
		},
	},
	"vlc": {
		titleFlag: "--meta-title=",
		platforms: map[string][]string{
			"darwin":  {"vlc", "open-a:VLC"},
			"linux":   {"vlc"},
			"windows": {"vlc"},
		},
	},
	"iina": {
		titleFlag: "--mpv-force-media-title=",
		platforms: map[string][]string{
			"darwin": {"open-a:IINA"},
		},
	},
	"celluloid": {
		platforms: map[string][]string{
			"linux": {"celluloid"},
		},
	},
}

// candidates is the detection order per platform
var candidates = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"mpv", "celluloid", "vlc"},
	"windows": {"mpv", "vlc"},
}

// NewLauncher creates a launcher. An empty command auto-detects a player.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		start:    startCommand,
		lookPath: exec.LookPath,
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Play opens the video in the configured player, a detected player, or the
// system URL handler, in that order.
func (l *Launcher) Play(videoID, title string) error {
	url := domain.WatchURL(videoID)

	if l.command != "" {
		args := append(append([]string{}, l.args...), titleArgs(playerName(l.command), title)...)
		args = append(args, url)
		l.logger.Info("launching configured player", "command", l.command, "video", videoID)
		return l.start(l.command, args...)
	}

	if name, err := l.detect(url, title); err == nil {
		l.logger.Info("launched detected player", "player", name, "video", videoID)
		return nil
	}

	l.logger.Info("no player found, using system handler", "os", runtime.GOOS, "video", videoID)
	return l.openURL(url)
}

func (l *Launcher) detect(url, title string) (string, error) {
	names, ok := candidates[runtime.GOOS]
	if !ok {
		names = candidates["linux"]
	}

	for _, name := range names {
		info := players[name]
		extra := titleArgs(name, title)

		for _, path := range info.platforms[runtime.GOOS] {
			var err error
			if app, ok := strings.CutPrefix(path, "open-a:"); ok {
				args := []string{"-a", app}
				if len(extra) > 0 {
					args = append(append(args, "--args"), extra...)
				}
				err = l.start("open", append(args, url)...)
			} else if _, err = l.lookPath(path); err == nil {
				err = l.start(path, append(extra, url)...)
			}

			if err == nil {
				return name, nil
			}
			l.logger.Debug("player unavailable", "player", name, "path", path, "error", err)
		}
	}
	return "", ErrNoPlayer
}

func (l *Launcher) openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return l.start("open", url)
	case "windows":
		return l.start("cmd", "/c", "start", "", url)
	default:
		return l.start("xdg-open", url)
	}
}

// playerName reduces a command path to a registry key
func playerName(command string) string {
	base := filepath.Base(command)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

func titleArgs(name, title string) []string {
	info, ok := players[name]
	if !ok || info.titleFlag == "" || title == "" {
		return nil
	}
	return []string{info.titleFlag + title}
}
