package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"upper case", "DEBUG", slog.LevelDebug},
		{"unknown defaults to info", "verbose", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestLevelTag(t *testing.T) {
	assert.Equal(t, "ERROR", levelTag(slog.LevelError))
	assert.Equal(t, "WARN ", levelTag(slog.LevelWarn))
	assert.Equal(t, "INFO ", levelTag(slog.LevelInfo))
	assert.Equal(t, "DEBUG", levelTag(slog.LevelDebug))
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "console", Output: &buf})

	log.Debug("hidden")
	log.With("component", "loader").WithGroup("asset").Info("Asset loaded", "meshes", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO  Asset loaded")
	assert.Contains(t, out, "component=loader")
	assert.Contains(t, out, "asset.meshes=3")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestConsoleHandlerGroupScope(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "console", Output: &buf})

	log.With("component", "loop").
		WithGroup("req").With("path", "moon.glb").
		WithGroup("").
		Info("m", "id", 1)

	out := buf.String()
	assert.Contains(t, out, "m  component=loop  req.path=moon.glb  req.id=1\n")
	assert.NotContains(t, out, "req.component")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Level: "warn", Format: "json", Output: &buf}).Warn("surface missing", "width", 800)

	assert.Contains(t, buf.String(), `"msg":"surface missing"`)
	assert.Contains(t, buf.String(), `"width":800`)
}
