// Package launch locates the rileyviewer server binary and starts it as a
// fully detached process. The spawned server's lifetime is independent of
// the caller: it keeps running after the caller exits or its terminal
// closes, and it inherits no pipes the caller would have to drain.
//
// Launch failure is an ordinary, expected outcome here. Spawn reports a
// plain bool and swallows every error; the session establisher turns a
// false result into its own user-actionable failure.
package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/rileyleff/rileyviewer-go/internal/logging"
)

// DefaultBinaryName is the name of the server executable.
const DefaultBinaryName = "rileyviewer"

// Options describe the server process to start.
type Options struct {
	Host string
	Port int
	// Token, when non-empty, is passed to the server so that the session
	// adopting it knows the shared secret up front.
	Token string
	// OpenBrowser makes the server open the viewer page after binding.
	OpenBrowser bool
	// DistDir points the server at an alternate static-asset directory
	// (development workflows). Empty means the server's built-in assets.
	DistDir string
	// HistoryLimit caps the server-side plot history. Zero means the
	// server default.
	HistoryLimit int
}

// Launcher starts a detached server process.
type Launcher interface {
	// Spawn starts the server described by opts. It returns false if no
	// server binary could be found or the process failed to start; it
	// never returns an error.
	Spawn(opts Options) bool
}

// ExecLauncher resolves the server binary from the filesystem and starts it
// with os/exec.
type ExecLauncher struct {
	// BinaryName overrides the executable name. Empty means
	// DefaultBinaryName.
	BinaryName string
	// ExtraDirs are searched before the fixed install and build
	// directories. Used by tests.
	ExtraDirs []string

	log *logging.Logger
}

// New creates an ExecLauncher.
func New() *ExecLauncher {
	return &ExecLauncher{log: logging.With("component", "launch")}
}

// Spawn implements Launcher.
func (l *ExecLauncher) Spawn(opts Options) bool {
	path, ok := l.resolveBinary()
	if !ok {
		l.logger().Debug("server binary not found", "name", l.binaryName())
		return false
	}

	cmd := exec.Command(path, buildArgs(opts)...)
	// No stdio wiring: the child gets the null device, so the parent never
	// has pipes to service.
	detach(cmd)

	if err := cmd.Start(); err != nil {
		l.logger().Warn("failed to start server", "path", path, "error", err)
		return false
	}

	// Release drops the parent's handle; the child is on its own now.
	if err := cmd.Process.Release(); err != nil {
		l.logger().Debug("failed to release server process", "error", err)
	}

	l.logger().Debug("spawned detached server", "path", path, "addr",
		fmt.Sprintf("%s:%d", opts.Host, opts.Port))
	return true
}

func (l *ExecLauncher) binaryName() string {
	name := l.BinaryName
	if name == "" {
		name = DefaultBinaryName
	}
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return name
}

func (l *ExecLauncher) logger() *logging.Logger {
	if l.log == nil {
		return logging.With("component", "launch")
	}
	return l.log
}

// resolveBinary finds the server executable. Resolution order: the explicit
// extra dirs, then $PATH, then fixed install directories, then local build
// output directories.
func (l *ExecLauncher) resolveBinary() (string, bool) {
	name := l.binaryName()

	for _, dir := range l.ExtraDirs {
		if path, ok := executableAt(filepath.Join(dir, name)); ok {
			return path, true
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, true
	}

	for _, dir := range installDirs() {
		if path, ok := executableAt(filepath.Join(dir, name)); ok {
			return path, true
		}
	}

	// Development fallback: a checkout of the server built in place.
	for _, dir := range []string{
		filepath.Join("target", "release"),
		filepath.Join("target", "debug"),
	} {
		if path, ok := executableAt(filepath.Join(dir, name)); ok {
			return path, true
		}
	}

	return "", false
}

// installDirs lists the fixed well-known installation directories.
func installDirs() []string {
	dirs := []string{"/usr/local/bin", "/opt/homebrew/bin"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".cargo", "bin"),
		)
	}
	return dirs
}

func executableAt(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// buildArgs constructs the server's command line from opts.
func buildArgs(opts Options) []string {
	args := []string{
		"serve",
		"--host", opts.Host,
		"--port", strconv.Itoa(opts.Port),
		fmt.Sprintf("--open-browser=%t", opts.OpenBrowser),
	}
	if opts.Token != "" {
		args = append(args, "--token", opts.Token)
	}
	if opts.DistDir != "" {
		args = append(args, "--dist-dir", opts.DistDir)
	}
	if opts.HistoryLimit > 0 {
		args = append(args, "--history-limit", strconv.Itoa(opts.HistoryLimit))
	}
	return args
}
