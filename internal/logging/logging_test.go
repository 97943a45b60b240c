package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		err  bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(&buf, Options{Level: "warn"})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("quiet")
	logger.Warn("budget exhausted", "placed", 3)

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "budget exhausted")
	assert.Contains(t, out, "placed=3")
	assert.NotContains(t, out, "\x1b[", "buffers never get colour")
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worldgen.log")
	var buf bytes.Buffer
	logger, closer, err := New(&buf, Options{Level: "debug", File: path})
	require.NoError(t, err)

	logger.With("stage", "roads").Debug("road built", "length", 12.5)
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "road built")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "road built", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "roads", rec["stage"])
	assert.Equal(t, 12.5, rec["length"])
}

func TestBadLevel(t *testing.T) {
	_, _, err := New(&bytes.Buffer{}, Options{Level: "chatty"})
	assert.Error(t, err)
}
