package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStateFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_ValidRecord(t *testing.T) {
	t.Parallel()

	path := writeStateFile(t, `{"pid":4242,"addr":"127.0.0.1:7878","token":"secret"}`)
	r := &FileReader{Path: path}

	st, ok := r.Read()
	require.True(t, ok)
	assert.Equal(t, uint32(4242), st.PID)
	assert.Equal(t, "127.0.0.1:7878", st.Addr)
	assert.Equal(t, "secret", st.Token)
}

func TestRead_TokenOptional(t *testing.T) {
	t.Parallel()

	path := writeStateFile(t, `{"pid":1,"addr":"127.0.0.1:7878"}`)
	r := &FileReader{Path: path}

	st, ok := r.Read()
	require.True(t, ok)
	assert.Empty(t, st.Token)
}

func TestRead_MissingFileIsAbsent(t *testing.T) {
	t.Parallel()

	r := &FileReader{Path: filepath.Join(t.TempDir(), "nope.json")}
	st, ok := r.Read()
	assert.False(t, ok)
	assert.Nil(t, st)
}

func TestRead_CorruptFileIsAbsent(t *testing.T) {
	t.Parallel()

	path := writeStateFile(t, `{"pid": not json`)
	r := &FileReader{Path: path}

	_, ok := r.Read()
	assert.False(t, ok)
}

func TestRead_EmptyAddrIsAbsent(t *testing.T) {
	t.Parallel()

	path := writeStateFile(t, `{"pid":9,"token":"t"}`)
	r := &FileReader{Path: path}

	_, ok := r.Read()
	assert.False(t, ok)
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	path := DefaultPath()
	assert.Contains(t, path, "rileyviewer")
	assert.Equal(t, "server.json", filepath.Base(path))
}
