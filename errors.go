package rileyviewer

import (
	"github.com/rileyleff/rileyviewer-go/content"
	"github.com/rileyleff/rileyviewer-go/internal/publish"
	"github.com/rileyleff/rileyviewer-go/internal/session"
)

// Session establishment failures. Each cause is distinct so callers can
// branch: ErrBinaryNotFound calls for an install step, ErrStartupTimeout
// may be worth a retry with a fresh Viewer.
var (
	ErrBinaryNotFound = session.ErrBinaryNotFound
	ErrStartupTimeout = session.ErrStartupTimeout
)

// Publish and dispatch failures, matched with errors.As.
type (
	// AuthError is a non-retryable 4xx rejection from the server.
	AuthError = publish.AuthError
	// TransportError reports exhausted retries on a retryable condition;
	// it wraps the last underlying cause.
	TransportError = publish.TransportError
	// ProtocolError reports a malformed publish response.
	ProtocolError = publish.ProtocolError
	// UnsupportedContentError reports that Show found no capability match
	// for a value; it names the value's concrete type.
	UnsupportedContentError = content.UnsupportedContentError
)
