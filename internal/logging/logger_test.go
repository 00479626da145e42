package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Options{Level: "warn"}, &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "pgmaint", entry["service"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewWithWriter_DevDefaultsToDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Options{Dev: true}, &buf)
	require.NoError(t, err)

	logger.Debug("visible")
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), "visible")
}

func TestNewWithWriter_BadLevel(t *testing.T) {
	_, err := NewWithWriter(Options{Level: "chatty"}, &bytes.Buffer{})
	assert.Error(t, err)
}
