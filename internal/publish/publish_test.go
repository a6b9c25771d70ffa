package publish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyleff/rileyviewer-go/content"
)

// publishRecorder is a test server that scripts status codes per attempt and
// records request bodies and arrival times.
type publishRecorder struct {
	mu       sync.Mutex
	statuses []int
	hits     int
	times    []time.Time
	bodies   []Request
}

func (r *publishRecorder) handler(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var body Request
	json.NewDecoder(req.Body).Decode(&body)
	r.bodies = append(r.bodies, body)
	r.times = append(r.times, time.Now())

	status := http.StatusOK
	if r.hits < len(r.statuses) {
		status = r.statuses[r.hits]
	}
	r.hits++

	if status != http.StatusOK {
		w.WriteHeader(status)
		return
	}
	json.NewEncoder(w).Encode(Response{ID: "plot-123"})
}

func newTestClient(t *testing.T, rec *publishRecorder, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	t.Cleanup(srv.Close)

	c := New(strings.TrimPrefix(srv.URL, "http://"), token)
	c.InitialBackoff = 20 * time.Millisecond
	return c
}

func TestPublish_Success(t *testing.T) {
	t.Parallel()

	rec := &publishRecorder{}
	c := newTestClient(t, rec, "secret")

	id, err := c.Publish(context.Background(), content.NewSVG("<svg/>"))
	require.NoError(t, err)

	assert.Equal(t, "plot-123", id)
	require.Len(t, rec.bodies, 1)
	assert.Equal(t, "secret", rec.bodies[0].Token)
	assert.Equal(t, content.KindSVG, rec.bodies[0].Content.Kind)
}

func TestPublish_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	rec := &publishRecorder{statuses: []int{http.StatusServiceUnavailable, http.StatusBadGateway}}
	c := newTestClient(t, rec, "")

	id, err := c.Publish(context.Background(), content.NewHTML("<b/>"))
	require.NoError(t, err)

	assert.Equal(t, "plot-123", id)
	require.Equal(t, 3, rec.hits, "two failures then one success is exactly 3 attempts")

	// Backoff between attempts must not shrink.
	gap1 := rec.times[1].Sub(rec.times[0])
	gap2 := rec.times[2].Sub(rec.times[1])
	assert.GreaterOrEqual(t, gap2, gap1)
}

func TestPublish_ClientErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	rec := &publishRecorder{statuses: []int{http.StatusBadRequest}}
	c := newTestClient(t, rec, "wrong-token")

	_, err := c.Publish(context.Background(), content.NewSVG("<svg/>"))

	var auth *AuthError
	require.ErrorAs(t, err, &auth)
	assert.Equal(t, http.StatusBadRequest, auth.Status)
	assert.Equal(t, 1, rec.hits, "4xx must fail after exactly one attempt")
}

func TestPublish_ExhaustedRetries(t *testing.T) {
	t.Parallel()

	rec := &publishRecorder{statuses: []int{
		http.StatusInternalServerError,
		http.StatusInternalServerError,
		http.StatusInternalServerError,
	}}
	c := newTestClient(t, rec, "")

	_, err := c.Publish(context.Background(), content.NewSVG("<svg/>"))

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, 3, transport.Attempts)
	assert.Error(t, transport.Cause)
	assert.Equal(t, 3, rec.hits)
}

func TestPublish_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := strings.TrimPrefix(srv.URL, "http://")
	srv.Close()

	c := New(addr, "")
	c.InitialBackoff = time.Millisecond

	_, err := c.Publish(context.Background(), content.NewSVG("<svg/>"))

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, 3, transport.Attempts)
}

func TestPublish_MissingIDIsProtocolError(t *testing.T) {
	t.Parallel()

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := New(strings.TrimPrefix(srv.URL, "http://"), "")
	c.InitialBackoff = time.Millisecond

	_, err := c.Publish(context.Background(), content.NewSVG("<svg/>"))

	var proto *ProtocolError
	require.ErrorAs(t, err, &proto)
	assert.Equal(t, 1, hits, "a malformed success is not retryable")
}
