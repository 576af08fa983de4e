// Package util carries small ambient helpers: slog setup, grounded on
// the teacher's util.InitSlog.
package util

import (
	"log/slog"
	"os"
	"strings"
)

// InitSlog configures the default slog logger from the LOG_LEVEL
// environment variable (debug, info, warn, error). Production code in
// this module never calls it — a library has no business reaching for
// the global logger on its own — so it's wired only from
// internal/testutil's init(), the same call site the teacher wires it
// from. An importing application is free to call it too, but nothing
// here requires that: logging stays opt-in and never required for
// correctness.
func InitSlog() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		return
	}

	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
