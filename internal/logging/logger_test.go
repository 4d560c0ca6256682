package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" ERROR ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	got, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, slog.LevelInfo, got)
}

func TestNew_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "prod", "info", "weather-now")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("weather fetch completed", "code", "113")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "weather fetch completed", entry["msg"])
	assert.Equal(t, "weather-now", entry["app"])
	assert.Equal(t, "prod", entry["env"])
	assert.Equal(t, "113", entry["code"])
}

func TestNew_DevWritesText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "dev", "debug", "weather-now")
	require.NoError(t, err)

	logger.Debug("location fix received")
	assert.Contains(t, buf.String(), "location fix received")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "dev", "nope", "weather-now")
	assert.Error(t, err)
}
