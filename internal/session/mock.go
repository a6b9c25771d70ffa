package session

import (
	"sync"

	"github.com/rileyleff/rileyviewer-go/internal/launch"
	"github.com/rileyleff/rileyviewer-go/internal/state"
)

// MockProber implements probe.Prober with scripted responses. The n-th call
// to Healthy returns Responses[n-1]; calls past the end of the script return
// the last entry. Exported for use by tests in other packages.
type MockProber struct {
	mu        sync.Mutex
	Responses []bool
	Calls     int
}

// Healthy returns the next scripted response.
func (m *MockProber) Healthy(addr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	if len(m.Responses) == 0 {
		return false
	}
	idx := m.Calls - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx]
}

// MockLauncher implements launch.Launcher, recording spawn calls.
type MockLauncher struct {
	mu     sync.Mutex
	Result bool
	Spawns []launch.Options
}

// Spawn records opts and returns the configured result.
func (m *MockLauncher) Spawn(opts launch.Options) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Spawns = append(m.Spawns, opts)
	return m.Result
}

// MockStateReader implements state.Reader with a fixed record.
type MockStateReader struct {
	mu    sync.Mutex
	State *state.ServerState
	Reads int
}

// Read returns the configured record, or absent when State is nil.
func (m *MockStateReader) Read() (*state.ServerState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Reads++
	if m.State == nil {
		return nil, false
	}
	return m.State, true
}
