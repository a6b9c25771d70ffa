package rileyviewer

import (
	"time"

	"github.com/rileyleff/rileyviewer-go/content"
)

// Option customizes a Viewer. Options override the config file.
type Option func(*Viewer)

// WithHost sets the server host.
func WithHost(host string) Option {
	return func(v *Viewer) { v.cfg.Host = host }
}

// WithPort sets the server port.
func WithPort(port int) Option {
	return func(v *Viewer) { v.cfg.Port = port }
}

// WithToken sets an explicit shared secret. Without it the Viewer adopts
// the token recorded by the running server, or generates one when
// launching.
func WithToken(token string) Option {
	return func(v *Viewer) { v.cfg.Token = token }
}

// WithFormat selects the wire encoding used when Show resolves a value to a
// renderable figure. The default is SVG.
func WithFormat(format content.Format) Option {
	return func(v *Viewer) { v.format = format }
}

// WithOpenBrowser controls whether a launched server opens the viewer page.
func WithOpenBrowser(open bool) Option {
	return func(v *Viewer) { v.cfg.OpenBrowser = open }
}

// WithDistDir points a launched server at an alternate static-asset
// directory (development workflows).
func WithDistDir(dir string) Option {
	return func(v *Viewer) { v.cfg.DistDir = dir }
}

// WithHistoryLimit caps the plot history of a launched server.
func WithHistoryLimit(limit int) Option {
	return func(v *Viewer) { v.cfg.HistoryLimit = limit }
}

// WithStartupDeadline bounds how long establishment waits for a launched
// server to become healthy.
func WithStartupDeadline(d time.Duration) Option {
	return func(v *Viewer) { v.cfg.StartupDeadline = d }
}
