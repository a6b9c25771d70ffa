package logging

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCapturedLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(log.New(&buf, "", 0))
	return l, &buf
}

func TestLogger_DefaultLevelSuppressesDebug(t *testing.T) {
	t.Parallel()

	l, buf := newCapturedLogger()
	l.Debug("hidden")
	l.Info("also hidden")
	l.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN: visible")
}

func TestLogger_WithFields(t *testing.T) {
	t.Parallel()

	l, buf := newCapturedLogger()
	l.SetLevel(LevelDebug)
	l.With("addr", "127.0.0.1:7878").Debug("probing", "attempt", 3)

	out := buf.String()
	assert.Contains(t, out, "DEBUG: probing")
	assert.Contains(t, out, "addr=127.0.0.1:7878")
	assert.Contains(t, out, "attempt=3")
}

func TestLogger_QuotesValuesWithSpaces(t *testing.T) {
	t.Parallel()

	l, buf := newCapturedLogger()
	l.Error("failed", "reason", "no such file")

	assert.Contains(t, buf.String(), `reason="no such file"`)
}
