// Package probe implements the fast liveness check used to decide whether a
// rileyviewer server is already accepting connections at an address.
package probe

import (
	"fmt"
	"net/http"
	"time"
)

// Timeout bounds a single probe attempt. The probe is a polling primitive,
// so it must answer in hundreds of milliseconds, not seconds.
const Timeout = 500 * time.Millisecond

// Prober reports whether a server answers health checks at an address.
type Prober interface {
	Healthy(addr string) bool
}

// HTTPProber probes the server's /health endpoint over HTTP.
type HTTPProber struct {
	client *http.Client
}

// New creates an HTTPProber with the standard probe timeout.
func New() *HTTPProber {
	return &HTTPProber{
		client: &http.Client{Timeout: Timeout},
	}
}

// Healthy performs one GET against http://addr/health. Any connection
// failure, timeout, or non-2xx status yields false; it never returns an
// error.
func (p *HTTPProber) Healthy(addr string) bool {
	resp, err := p.client.Get(fmt.Sprintf("http://%s/health", addr))
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
