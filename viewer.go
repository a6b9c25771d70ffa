// Package rileyviewer is a Go client for the rileyviewer plot server. It
// publishes visual artifacts (raster and vector images, interactive chart
// JSON, arbitrary HTML) to a long-lived local viewing server, starting one
// as a detached process if none is running.
//
// A Viewer establishes its session lazily on the first publish and keeps it
// for the lifetime of the instance:
//
//	v, err := rileyviewer.New()
//	if err != nil { ... }
//	id, err := v.SendSVG(ctx, "<svg>...</svg>")
//
// Arbitrary plot-like values are published through Show, which classifies
// them by the capabilities they expose (see the content package).
package rileyviewer

import (
	"context"
	"sync"

	"github.com/rileyleff/rileyviewer-go/content"
	"github.com/rileyleff/rileyviewer-go/internal/config"
	"github.com/rileyleff/rileyviewer-go/internal/publish"
	"github.com/rileyleff/rileyviewer-go/internal/session"
	"github.com/rileyleff/rileyviewer-go/internal/watch"
)

// publisher abstracts the publish client for testing.
type publisher interface {
	Publish(ctx context.Context, payload content.Payload) (string, error)
}

// Viewer is a client for one rileyviewer server. Create it with New; the
// zero value is not usable. A Viewer is safe for use from multiple
// goroutines, but publish calls are serialized so artifacts arrive at the
// server in call order.
type Viewer struct {
	cfg    session.Config
	format content.Format

	establisher *session.Establisher
	newPub      func(addr, token string) publisher

	mu           sync.Mutex
	sess         *session.Session
	pub          publisher
	establishErr error
}

// New creates a Viewer. Settings come from the config file when present;
// options override it.
func New(opts ...Option) (*Viewer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg: session.Config{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			OpenBrowser:  cfg.Server.OpenBrowser,
			HistoryLimit: cfg.Server.HistoryLimit,
		},
		format:      content.FormatSVG,
		establisher: session.New(),
		newPub: func(addr, token string) publisher {
			return publish.New(addr, token)
		},
	}

	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// ensure establishes the session on first use. A failed establishment is
// terminal for this Viewer: the same error is returned on every subsequent
// call rather than silently degrading.
func (v *Viewer) ensure(ctx context.Context) (publisher, *session.Session, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.establishErr != nil {
		return nil, nil, v.establishErr
	}
	if v.sess != nil {
		return v.pub, v.sess, nil
	}

	sess, err := v.establisher.Establish(ctx, v.cfg)
	if err != nil {
		v.establishErr = err
		return nil, nil, err
	}

	v.sess = sess
	v.pub = v.newPub(sess.Addr(), sess.Token)
	return v.pub, v.sess, nil
}

// Connect establishes the session eagerly. Publish methods do this
// implicitly; Connect exists for callers that want the failure early or
// need Addr/Token before publishing.
func (v *Viewer) Connect(ctx context.Context) error {
	_, _, err := v.ensure(ctx)
	return err
}

// Addr returns the established session's host:port, or "" before
// establishment.
func (v *Viewer) Addr() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sess == nil {
		return ""
	}
	return v.sess.Addr()
}

// Token returns the established session's shared secret, or "" before
// establishment or when the server is unauthenticated.
func (v *Viewer) Token() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sess == nil {
		return ""
	}
	return v.sess.Token
}

// Show classifies an arbitrary plot-like value by its capabilities and
// publishes it. It returns the server-assigned artifact id.
func (v *Viewer) Show(ctx context.Context, obj any) (string, error) {
	payload, err := content.Classify(obj, v.format)
	if err != nil {
		return "", err
	}
	return v.publish(ctx, payload)
}

// SendPNG publishes raw PNG bytes.
func (v *Viewer) SendPNG(ctx context.Context, raw []byte) (string, error) {
	return v.publish(ctx, content.NewPNG(raw))
}

// SendSVG publishes SVG markup.
func (v *Viewer) SendSVG(ctx context.Context, svg string) (string, error) {
	return v.publish(ctx, content.NewSVG(svg))
}

// SendPlotlyJSON publishes an opaque Plotly figure JSON string.
func (v *Viewer) SendPlotlyJSON(ctx context.Context, payload string) (string, error) {
	return v.publish(ctx, content.NewPlotlyJSON(payload))
}

// SendVegaJSON publishes an opaque Vega/Vega-Lite spec JSON string.
func (v *Viewer) SendVegaJSON(ctx context.Context, payload string) (string, error) {
	return v.publish(ctx, content.NewVegaJSON(payload))
}

// SendHTML publishes embeddable HTML markup.
func (v *Viewer) SendHTML(ctx context.Context, html string) (string, error) {
	return v.publish(ctx, content.NewHTML(html))
}

func (v *Viewer) publish(ctx context.Context, payload content.Payload) (string, error) {
	pub, _, err := v.ensure(ctx)
	if err != nil {
		return "", err
	}

	// Serialize publishes so artifact order at the server matches call
	// order from this client.
	v.mu.Lock()
	defer v.mu.Unlock()
	return pub.Publish(ctx, payload)
}

// Watch subscribes to the server's plot feed and invokes fn for each
// message (history replay first, then live) until ctx is cancelled or the
// connection drops.
func (v *Viewer) Watch(ctx context.Context, fn func(content.Message)) error {
	_, sess, err := v.ensure(ctx)
	if err != nil {
		return err
	}
	return watch.New(sess.Addr(), sess.Token).Run(ctx, fn)
}
