package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestSetupWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "brickimg.log")
	logger, closer, err := Setup("warn", path)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "bricks", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "msg=shown bricks=3")
}

func TestColorHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&colorHandler{w: &buf, level: slog.LevelInfo}).With("image", "a.png")
	logger.Debug("skipped")
	logger.Info("done", "rects", 12)

	out := buf.String()
	assert.NotContains(t, out, "skipped")
	assert.Contains(t, out, "done image=a.png rects=12")
}
