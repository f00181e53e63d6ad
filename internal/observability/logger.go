package observability

import (
	"log/slog"
	"os"
)

// NewLogger returns the process-wide structured logger. JSON output so log
// aggregation does not need a parser per service.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
