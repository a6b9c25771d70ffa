// Package session establishes a connection to a rileyviewer server, adopting
// one that is already running or launching a fresh detached server and
// waiting for it to become healthy.
//
// Establishment is a small state machine: Probing, then either Adopting (a
// live server answered) or Launching followed by Waiting (poll the health
// endpoint until ready or a deadline elapses). Ready and Failed are terminal
// for one attempt. The two failure causes are distinct errors because the
// caller should act differently on them: ErrBinaryNotFound means install the
// server, ErrStartupTimeout means it may be worth retrying.
//
// Two clients can race through Probing at the same time and both decide to
// launch. That race is accepted: the loser's server exits on bind failure
// and both clients converge on the survivor via the health poll. There is no
// cross-process locking here on purpose.
package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rileyleff/rileyviewer-go/internal/launch"
	"github.com/rileyleff/rileyviewer-go/internal/logging"
	"github.com/rileyleff/rileyviewer-go/internal/probe"
	"github.com/rileyleff/rileyviewer-go/internal/state"
)

// Polling defaults for the Waiting state.
const (
	DefaultPollInterval    = 100 * time.Millisecond
	DefaultStartupDeadline = 5 * time.Second
)

// Terminal establishment failures.
var (
	// ErrBinaryNotFound means no server executable could be resolved.
	// User-actionable: install the server; retrying cannot help.
	ErrBinaryNotFound = errors.New("rileyviewer server binary not found (install with: brew install rileyleff/tap/rileyviewer, or cargo install rileyviewer)")

	// ErrStartupTimeout means a server was launched but never answered
	// health checks before the deadline.
	ErrStartupTimeout = errors.New("rileyviewer server did not become healthy before the startup deadline")
)

// Session is the client-side record of one established server connection.
// It is immutable once Establish returns it.
type Session struct {
	Host  string
	Port  int
	Token string
}

// Addr returns the session's host:port.
func (s *Session) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Config describes the server a client wants a session with.
type Config struct {
	Host string
	Port int
	// Token is an explicitly supplied shared secret. Empty means adopt the
	// token recorded by the server, or generate one when launching.
	Token string
	// OpenBrowser, DistDir and HistoryLimit are passed through to the
	// launcher when a server has to be started.
	OpenBrowser  bool
	DistDir      string
	HistoryLimit int

	// PollInterval and StartupDeadline bound the Waiting state. Zero
	// values mean the defaults.
	PollInterval    time.Duration
	StartupDeadline time.Duration
}

// Establisher coordinates the prober, state reader and launcher into one
// establishment attempt.
type Establisher struct {
	Prober   probe.Prober
	Launcher launch.Launcher
	States   state.Reader

	log *logging.Logger

	// sleep is swapped out by tests to make the wait loop instantaneous.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates an Establisher wired to the real prober, launcher and state
// file reader.
func New() *Establisher {
	return &Establisher{
		Prober:   probe.New(),
		Launcher: launch.New(),
		States:   &state.FileReader{},
		log:      logging.With("component", "session"),
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Establish runs one establishment attempt against cfg. On success the
// returned session carries the adopted address and token. On failure the
// error is ErrBinaryNotFound, ErrStartupTimeout, or a context error.
func (e *Establisher) Establish(ctx context.Context, cfg Config) (*Session, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	log := e.logger().With("addr", addr)

	// Probing: is a compatible server already there?
	if e.Prober.Healthy(addr) {
		return e.adopt(cfg, addr, log), nil
	}

	// Launching. Generate the shared secret up front when none was given,
	// so the launched server and this session agree on it even before the
	// state file is re-read.
	token := cfg.Token
	if token == "" {
		token = uuid.NewString()
	}

	if !e.Launcher.Spawn(launch.Options{
		Host:         cfg.Host,
		Port:         cfg.Port,
		Token:        token,
		OpenBrowser:  cfg.OpenBrowser,
		DistDir:      cfg.DistDir,
		HistoryLimit: cfg.HistoryLimit,
	}) {
		log.Debug("launch failed: no server binary")
		return nil, ErrBinaryNotFound
	}

	// Waiting: poll health until ready or the deadline elapses. The budget
	// is decremented per poll rather than read from the wall clock so the
	// loop terminates after a fixed number of attempts.
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	deadline := cfg.StartupDeadline
	if deadline <= 0 {
		deadline = DefaultStartupDeadline
	}

	for remaining := deadline; ; remaining -= interval {
		if e.Prober.Healthy(addr) {
			break
		}
		if remaining <= interval {
			log.Debug("server did not become healthy", "deadline", deadline)
			return nil, ErrStartupTimeout
		}
		if err := e.sleep(ctx, interval); err != nil {
			return nil, fmt.Errorf("waiting for server: %w", err)
		}
	}

	// The server persists its state record before accepting connections,
	// so a successful probe means the read should succeed. Fall back to
	// what we launched with if it somehow does not.
	sess := &Session{Host: cfg.Host, Port: cfg.Port, Token: token}
	if st, ok := e.States.Read(); ok && st.Addr == addr {
		if cfg.Token == "" && st.Token != "" {
			sess.Token = st.Token
		}
	} else {
		log.Warn("state file missing after healthy probe; using launch parameters")
	}

	log.Debug("session established", "launched", true)
	return sess, nil
}

// adopt builds a session from a server that already answers health checks.
// The state file's token is adopted only when its recorded address matches
// the requested one; a mismatched record belongs to some other (possibly
// dead) server instance and must not leak its token into this session.
func (e *Establisher) adopt(cfg Config, addr string, log *logging.Logger) *Session {
	sess := &Session{Host: cfg.Host, Port: cfg.Port, Token: cfg.Token}

	if cfg.Token == "" {
		if st, ok := e.States.Read(); ok && st.Addr == addr {
			sess.Token = st.Token
		}
	}

	log.Debug("adopted running server", "authenticated", sess.Token != "")
	return sess
}

func (e *Establisher) logger() *logging.Logger {
	if e.log == nil {
		return logging.With("component", "session")
	}
	return e.log
}
