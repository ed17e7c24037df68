package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerFormatsLevelAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug, false)

	logger.Info("scanned files", slog.Int("count", 3))

	out := buf.String()
	assert.Contains(t, out, "[info]")
	assert.Contains(t, out, "scanned files")
	assert.Contains(t, out, "count=3")
}

func TestHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, false)

	logger.Info("suppressed")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "shown")
}

func TestLevelFromVerbosity(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, LevelFromVerbosity(0))
	assert.Equal(t, slog.LevelInfo, LevelFromVerbosity(1))
	assert.Equal(t, slog.LevelDebug, LevelFromVerbosity(2))
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromString("debug"))
	assert.Equal(t, slog.LevelWarn, LevelFromString("warning"))
	assert.Equal(t, slog.LevelInfo, LevelFromString("bogus"))
}
