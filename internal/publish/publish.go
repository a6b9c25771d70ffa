// Package publish delivers content payloads to an established rileyviewer
// session over HTTP with bounded retry.
//
// Failures are classified into two groups. A 4xx rejection is permanent:
// retrying a bad token or malformed payload cannot succeed, so it surfaces
// immediately as an AuthError. Connection failures, timeouts and 5xx
// responses are retryable and are consumed silently up to the attempt
// budget; exhaustion surfaces as a TransportError carrying the last cause.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rileyleff/rileyviewer-go/content"
	"github.com/rileyleff/rileyviewer-go/internal/logging"
)

// Defaults for the retry policy.
const (
	DefaultAttempts       = 3
	DefaultInitialBackoff = 100 * time.Millisecond
	DefaultTimeout        = 3 * time.Second
)

// Request is the publish envelope sent to POST /api/publish.
type Request struct {
	Content content.Payload `json:"content"`
	Token   string          `json:"token,omitempty"`
}

// Response is the server's success body.
type Response struct {
	// ID is the server-assigned identifier of the accepted artifact.
	ID string `json:"id"`
}

// AuthError is a non-retryable 4xx rejection from the server.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("publish rejected by server (status %d): %s", e.Status, e.Message)
}

// TransportError reports that every attempt failed on a retryable condition.
// Cause is the last underlying failure.
type TransportError struct {
	Attempts int
	Cause    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("publish failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// ProtocolError reports a response that violates the publish protocol, such
// as a 200 with no identifier.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return "protocol violation: " + e.Message
}

// Client publishes payloads to one server session.
type Client struct {
	addr  string
	token string

	// Attempts, InitialBackoff and Timeout tune the retry policy; New
	// fills in the defaults.
	Attempts       int
	InitialBackoff time.Duration
	Timeout        time.Duration

	httpClient *http.Client
	log        *logging.Logger
}

// New creates a Client for the server at addr. token may be empty for an
// unauthenticated server.
func New(addr, token string) *Client {
	return &Client{
		addr:           addr,
		token:          token,
		Attempts:       DefaultAttempts,
		InitialBackoff: DefaultInitialBackoff,
		Timeout:        DefaultTimeout,
		log:            logging.With("component", "publish"),
	}
}

// Publish sends payload and returns the server-assigned artifact id.
func (c *Client) Publish(ctx context.Context, payload content.Payload) (string, error) {
	body, err := json.Marshal(Request{Content: payload, Token: c.token})
	if err != nil {
		return "", fmt.Errorf("encoding publish request: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.InitialBackoff
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxElapsedTime = 0

	attempts := 0
	operation := func() (string, error) {
		attempts++
		id, err := c.attempt(ctx, body)
		if err == nil {
			return id, nil
		}

		var auth *AuthError
		var proto *ProtocolError
		if errors.As(err, &auth) || errors.As(err, &proto) {
			return "", backoff.Permanent(err)
		}

		c.log.Debug("retryable publish failure", "attempt", attempts, "error", err)
		return "", err
	}

	id, err := backoff.RetryWithData(operation,
		backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.Attempts-1)), ctx))
	if err != nil {
		var auth *AuthError
		var proto *ProtocolError
		if errors.As(err, &auth) || errors.As(err, &proto) {
			return "", err
		}
		return "", &TransportError{Attempts: attempts, Cause: err}
	}

	return id, nil
}

// attempt performs a single POST to the publish endpoint.
func (c *Client) attempt(ctx context.Context, body []byte) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	url := fmt.Sprintf("http://%s/api/publish", c.addr)
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &AuthError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(msg))}

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &ProtocolError{Message: fmt.Sprintf("undecodable publish response: %v", err)}
	}
	if out.ID == "" {
		return "", &ProtocolError{Message: "publish response missing artifact id"}
	}

	return out.ID, nil
}

func (c *Client) client() *http.Client {
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c.httpClient
}

func (c *Client) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
