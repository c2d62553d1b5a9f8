package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "bot.log")

	log := New(Options{
		Level:  "debug",
		Format: "json",
		File:   logFile,
	})

	log.Info("update handled", slog.Int64("user_id", 42))

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "update handled")
	require.Contains(t, string(data), `"user_id":42`)
}

func TestNew_MasksSensitiveAttrs(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "bot.log")

	log := New(Options{
		Level:  "info",
		Format: "text",
		File:   logFile,
	})

	log.Info("starting bot", slog.String("bot_token", "123456:super-secret"))

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.NotContains(t, string(data), "super-secret")
	require.Contains(t, string(data), "***")
}

func TestNew_WithSentryFanout(t *testing.T) {
	// The Sentry SDK is deliberately not initialized; its handler must no-op.
	logFile := filepath.Join(t.TempDir(), "bot.log")

	log := New(Options{
		Level:         "info",
		Format:        "json",
		File:          logFile,
		SentryEnabled: true,
	})

	log.Error("reminder delivery failed", slog.String("dsn", "postgres://u:p@host/db"))
	log.Info("below sentry level")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "reminder delivery failed")
	require.Contains(t, string(data), "below sentry level")
	require.NotContains(t, string(data), "postgres://u:p@host/db")
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.want, parseLevel(tc.in), "level %q", tc.in)
	}
}
