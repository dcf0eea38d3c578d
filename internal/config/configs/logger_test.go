package configs

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevelAndFormat(t *testing.T) {
	tests := []struct {
		level, format string
		wantLevel     slog.Level
		wantFormat    string
	}{
		{"debug", "json", slog.LevelDebug, "json"},
		{"WARNING", "JSON", slog.LevelWarn, "json"},
		{"err", "text", slog.LevelError, "text"},
		{"loud", "xml", slog.LevelInfo, "text"},
	}
	for _, tt := range tests {
		c := Logger{Level: tt.level, Format: tt.format}
		assert.Equal(t, tt.wantLevel, c.SlogLevel(), tt.level)
		assert.Equal(t, tt.wantFormat, c.SlogFormat(), tt.format)
	}
}

func TestLoggerHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(Logger{Level: "warn", Format: "json"}.Handler(&buf))

	logger.Info("hidden")
	logger.Warn("shown", slog.Int("zone", 2))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"zone":2`)

	buf.Reset()
	slog.New(Logger{Format: "text"}.Handler(&buf)).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
