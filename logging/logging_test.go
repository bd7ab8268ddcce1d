package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/0xalexb/conftree/logging"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be valid JSON")

	return entry
}

func TestNewLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Level: "INFO"}, &buf)
	logger.Info("node loaded", slog.String("path", "/etc/app/db/port"))

	entry := decode(t, &buf)
	require.Equal(t, "node loaded", entry["msg"])
	require.Equal(t, "/etc/app/db/port", entry["path"])
	require.Equal(t, "INFO", entry["level"])
	require.NotContains(t, entry, slog.SourceKey)
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		configLevel string
		enabled     []slog.Level
		disabled    []slog.Level
	}{
		{configLevel: "DEBUG", enabled: []slog.Level{slog.LevelDebug, slog.LevelError}},
		{configLevel: "debug", enabled: []slog.Level{slog.LevelDebug}},
		{configLevel: "INFO", enabled: []slog.Level{slog.LevelInfo}, disabled: []slog.Level{slog.LevelDebug}},
		{configLevel: "warn", enabled: []slog.Level{slog.LevelWarn}, disabled: []slog.Level{slog.LevelInfo}},
		{configLevel: "WARNING", enabled: []slog.Level{slog.LevelWarn}, disabled: []slog.Level{slog.LevelInfo}},
		{configLevel: "error", enabled: []slog.Level{slog.LevelError}, disabled: []slog.Level{slog.LevelWarn}},
		{configLevel: "", enabled: []slog.Level{slog.LevelInfo}, disabled: []slog.Level{slog.LevelDebug}},
		{configLevel: "verbose", enabled: []slog.Level{slog.LevelInfo}, disabled: []slog.Level{slog.LevelDebug}},
	}

	for _, testCase := range testCases {
		t.Run("level "+testCase.configLevel, func(t *testing.T) {
			t.Parallel()

			for _, level := range testCase.enabled {
				var buf bytes.Buffer

				logger := logging.NewLogger(logging.LoggerConfig{Level: testCase.configLevel}, &buf)
				logger.Log(context.Background(), level, "message")

				require.Equal(t, level.String(), decode(t, &buf)["level"])
			}

			for _, level := range testCase.disabled {
				var buf bytes.Buffer

				logger := logging.NewLogger(logging.LoggerConfig{Level: testCase.configLevel}, &buf)
				logger.Log(context.Background(), level, "message")

				require.Empty(t, buf.String(), "log should not be written")
			}
		})
	}
}

func TestNewLogger_Format(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		format string
		text   bool
	}{
		{name: "text", format: logging.FormatText, text: true},
		{name: "text any case", format: " TEXT ", text: true},
		{name: "json", format: logging.FormatJSON, text: false},
		{name: "empty is json", format: "", text: false},
		{name: "unknown is json", format: "xml", text: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := logging.NewLogger(logging.LoggerConfig{Format: testCase.format}, &buf)
			logger.Info("loaded", slog.String("path", "/etc/app/db"))

			if testCase.text {
				require.True(t, strings.HasPrefix(buf.String(), "time="))
				require.Contains(t, buf.String(), "level=INFO")
				require.Contains(t, buf.String(), "path=/etc/app/db")

				return
			}

			require.Equal(t, "/etc/app/db", decode(t, &buf)["path"])
		})
	}
}

func TestNewLogger_AddSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{AddSource: true}, &buf)
	logger.Info("test message")

	require.Contains(t, decode(t, &buf), slog.SourceKey)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelWarn, logging.ParseLevel(" warning "))
	require.Equal(t, slog.LevelDebug, logging.ParseLevel("Debug"))
	require.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	require.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Error("dropped")
}
