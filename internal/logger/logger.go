// Package logger builds the structured logger used by the booking
// engine.  Records go to stdout and to a log file so engine events
// (state transitions, invariant violations) survive restarts.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// New returns a slog.Logger writing to both stdout and the given
// file, creating parent directories as needed.  When the file cannot
// be opened the logger falls back to stdout only; logging must never
// prevent the service from starting.
func New(path string) *slog.Logger {
	var w io.Writer = os.Stdout
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
				w = io.MultiWriter(os.Stdout, f)
			}
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
