package logger

import (
	"log/slog"
	"os"
)

// New creates a preconfigured slog.Logger. Every record carries the
// service name so passmint lines are filterable in shared log streams.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "passmint"))
}
