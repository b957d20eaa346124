// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.level))
		})
	}
}

func TestNewLogHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newLogHandler(&buf, slog.LevelWarn, "json"))

	logger.Info("ignored")
	logger.Warn("login_failed", "username", "alice")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "login_failed", entry["msg"])
	assert.Equal(t, "alice", entry["username"])
}

func TestNewLogHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	handler := newLogHandler(&buf, slog.LevelInfo, "text")

	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
	slog.New(handler).Info("register_success", "username", "alice")
	assert.Contains(t, buf.String(), "register_success")
	assert.Contains(t, buf.String(), "alice")
}

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})

	setupLogger("debug", "json")

	assert.True(t, slog.Default().Handler().Enabled(context.Background(), slog.LevelDebug))
}
