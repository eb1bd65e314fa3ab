package pagination

import (
	"context"
	"log/slog"
)

// LogNavigation logs a navigation request with structured fields.
// The logger is expected to carry the request id already.
func LogNavigation(logger *slog.Logger, state State, target int, outcome string) {
	level := slog.LevelInfo
	if outcome == OutcomeFailed {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "pagination navigation",
		slog.Int("current_page", state.CurrentPage),
		slog.Int("total_pages", state.TotalPages),
		slog.Int("target_page", target),
		slog.String("outcome", outcome))
}
