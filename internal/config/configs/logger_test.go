package configs

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(Logger{Level: "warn", Format: " JSON "}.Handler(&buf))

	logger.Info("dropped")
	logger.Warn("kept", slog.String("campaign", "k"))

	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), `"msg":"kept"`)
	require.Contains(t, buf.String(), `"campaign":"k"`)
}

func TestLoggerLevels(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"err":     slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, Logger{Level: in}.SlogLevel(), in)
	}
	require.Equal(t, "text", Logger{Format: "yaml"}.SlogFormat())
}

func TestStorageDriver(t *testing.T) {
	require.Equal(t, DriverPostgres, Storage{Driver: "POSTGRES"}.NormalizedDriver())
	require.Equal(t, DriverMemory, Storage{Driver: "memory"}.NormalizedDriver())
	require.Equal(t, DriverBadger, Storage{Driver: "sqlite"}.NormalizedDriver())
}
