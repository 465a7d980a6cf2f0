package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LogOptions{Level: "warn"}, &buf)

	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.Empty(t, buf.String())
}

func TestNewLoggerFallbacks(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LogOptions{Level: "loud", Format: "xml"}, &buf)
	require.NotNil(t, logger)

	out := buf.String()
	assert.Contains(t, out, "could not parse log format")
	assert.Contains(t, out, "could not parse log level")
	assert.Contains(t, out, "level=loud")
}

func TestNewLoggerJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.log")
	logger := NewLogger(LogOptions{File: path, Format: "json"})

	logger.Info("hello", "contacts", 2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"contacts":2`)
}

func TestNewLoggerDevNull(t *testing.T) {
	logger := NewLogger(LogOptions{File: os.DevNull})
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
