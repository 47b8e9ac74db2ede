package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// maxDefaultOpens caps how many URLs the system handler opens per call
const maxDefaultOpens = 20

// Launcher opens page image URLs in an external viewer
type Launcher struct {
	command string   // configured viewer command, empty for auto-detect
	args    []string // additional arguments for the viewer
	logger  *slog.Logger

	goos     string
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// launchPath defines a single way to launch a viewer
type launchPath struct {
	path      string   // Command path: "feh", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command
}

// viewerConfig defines platform-specific launch configurations for a viewer
type viewerConfig struct {
	args      []string                // Arguments placed before the URLs
	platforms map[string][]launchPath // Platform -> launch paths to try in order
}

// viewers registry - every viewer here accepts several http(s) URLs at once
var viewers = map[string]viewerConfig{
	"feh": {
		args: []string{"--scale-down", "--auto-zoom"},
		platforms: map[string][]launchPath{
			"linux":   {{path: "feh"}},
			"freebsd": {{path: "feh"}},
		},
	},
	"gwenview": {
		platforms: map[string][]launchPath{
			"linux": {{path: "gwenview"}},
		},
	},
	"preview": {
		platforms: map[string][]launchPath{
			"darwin": {{path: "open-a:Preview"}},
		},
	},
}

// candidateViewers defines the preferred viewer order for each platform
var candidateViewers = map[string][]string{
	"darwin":  {"preview"},
	"linux":   {"feh", "gwenview"},
	"freebsd": {"feh"},
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start() // Start async, don't wait
		},
	}
}

// Open shows the URLs in the configured viewer, a detected viewer, or the
// system default handler, in that order
func (l *Launcher) Open(urls ...string) error {
	if len(urls) == 0 {
		return nil
	}

	// Tier 1: User configured a specific viewer
	if l.command != "" {
		args := append(append([]string{}, l.args...), urls...)
		l.logger.Info("using configured viewer", "command", l.command, "pages", len(urls))
		return l.start(l.command, args...)
	}

	// Tier 2: Try candidate chain
	if name, err := l.detectAndLaunch(urls); err == nil {
		l.logger.Info("launched with detected viewer", "viewer", name)
		return nil
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	l.logger.Info("no candidate viewers found, using system default")
	return l.launchDefault(urls)
}

// detectAndLaunch tries candidate viewers in order.
// Returns the viewer name that succeeded.
func (l *Launcher) detectAndLaunch(urls []string) (string, error) {
	for _, name := range candidateViewers[l.goos] {
		viewer, ok := viewers[name]
		if !ok {
			continue
		}

		for _, lp := range viewer.platforms[l.goos] {
			if !strings.HasPrefix(lp.path, "open-a:") {
				if _, err := l.lookPath(lp.path); err != nil {
					l.logger.Debug("launch path not available", "viewer", name, "path", lp.path, "error", err)
					continue
				}
			}

			cmd, args := commandFor(lp, viewer.args, urls)
			if err := l.start(cmd, args...); err != nil {
				l.logger.Debug("launch failed", "viewer", name, "path", lp.path, "error", err)
				continue
			}
			return name, nil
		}
	}
	return "", fmt.Errorf("no candidate viewers found")
}

// commandFor builds the command line for one launch path
func commandFor(lp launchPath, viewerArgs, urls []string) (string, []string) {
	if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
		args := append([]string{}, lp.openFlags...)
		args = append(args, "-a", app)
		args = append(args, urls...)
		return "open", args
	}
	args := append([]string{}, viewerArgs...)
	args = append(args, urls...)
	return lp.path, args
}

// launchDefault opens each URL with the system default handler
func (l *Launcher) launchDefault(urls []string) error {
	if len(urls) > maxDefaultOpens {
		l.logger.Warn("too many pages for the system handler, truncating", "pages", len(urls), "max", maxDefaultOpens)
		urls = urls[:maxDefaultOpens]
	}

	for _, u := range urls {
		name, args := defaultCommand(l.goos, u)
		if err := l.start(name, args...); err != nil {
			return fmt.Errorf("failed to open %s: %w", u, err)
		}
	}
	return nil
}

// defaultCommand returns the system handler command line for one URL
func defaultCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
