package logger

import (
	"log/slog"
	"os"
)

// New returns the structured logger used across services, handlers, and
// workers.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
