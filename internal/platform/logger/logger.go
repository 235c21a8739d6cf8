package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Text output to stdout keeps
// local runs readable; log shippers handle structuring downstream.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
