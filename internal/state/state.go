// Package state reads the persisted server-state record written by the
// rileyviewer server process. The record lives in a per-user data directory
// and tells clients where the last-known server is listening and which token
// it expects.
//
// The client never writes this file; the server owns it. A missing or corrupt
// record is reported as absent rather than as an error so that a stale or
// damaged file can never block a fresh launch.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// appDir is the directory name under the platform data dir. It matches the
// directory the server binary writes to.
const appDir = "rileyviewer"

// stateFileName is the record written by the server at startup.
const stateFileName = "server.json"

// ServerState describes the last-known running server.
type ServerState struct {
	PID   uint32 `json:"pid"`
	Addr  string `json:"addr"`
	Token string `json:"token,omitempty"`
}

// Reader reads the persisted server state.
type Reader interface {
	// Read returns the state record and true, or false if no usable record
	// exists. It never returns an error.
	Read() (*ServerState, bool)
}

// FileReader reads server state from a JSON file on disk.
type FileReader struct {
	// Path overrides the default state file location. Empty means the
	// platform default.
	Path string
}

// DefaultPath returns the platform-conventional state file path:
// ~/Library/Application Support on macOS, %LOCALAPPDATA% on Windows, and
// $XDG_DATA_HOME (or ~/.local/share) elsewhere.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, appDir, stateFileName)
}

// Read implements Reader. Any I/O or decode failure yields (nil, false).
func (r *FileReader) Read() (*ServerState, bool) {
	path := r.Path
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var st ServerState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, false
	}
	if st.Addr == "" {
		return nil, false
	}

	return &st, true
}
