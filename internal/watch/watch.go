// Package watch subscribes to the rileyviewer server's websocket feed. The
// server replays its plot history on connect and then streams new plots as
// they are published.
package watch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/rileyleff/rileyviewer-go/content"
	"github.com/rileyleff/rileyviewer-go/internal/logging"
)

// Handler receives one plot message from the feed.
type Handler func(content.Message)

// Client subscribes to one server's feed.
type Client struct {
	addr  string
	token string
	log   *logging.Logger
}

// New creates a watch client for the server at addr. token may be empty for
// an unauthenticated server.
func New(addr, token string) *Client {
	return &Client{
		addr:  addr,
		token: token,
		log:   logging.With("component", "watch"),
	}
}

// Run connects to the feed and invokes fn for every message, history replay
// first, until ctx is cancelled or the connection drops. It returns ctx's
// error on cancellation and the read error otherwise.
func (c *Client) Run(ctx context.Context, fn Handler) error {
	u := url.URL{Scheme: "ws", Host: c.addr, Path: "/ws"}
	if c.token != "" {
		q := u.Query()
		q.Set("token", c.token)
		u.RawQuery = q.Encode()
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("websocket handshake rejected (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("connecting to plot feed: %w", err)
	}
	defer conn.Close()

	// Unblock the read loop when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg content.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading plot feed: %w", err)
		}
		c.log.Debug("received plot", "id", msg.ID, "kind", msg.Content.Kind)
		fn(msg)
	}
}
