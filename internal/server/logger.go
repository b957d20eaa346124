// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// setupLogger installs the process-wide slog logger.
func setupLogger(level, format string) {
	slog.SetDefault(slog.New(newLogHandler(os.Stdout, parseLogLevel(level), format)))
}

// parseLogLevel maps a config value to a slog level. Unknown values mean info.
func parseLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// newLogHandler writes JSON for "json" and colored text otherwise.
func newLogHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	})
}
