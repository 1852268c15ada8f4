package muxhandlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/vitalvas/navmux/mux"
)

// LoggingConfig configures the Logging middleware behaviour.
type LoggingConfig struct {
	// Logger receives one record per dispatch. Defaults to slog.Default().
	Logger *slog.Logger

	// Level is the record level. The zero value is slog.LevelInfo.
	Level slog.Level
}

// LoggingMiddleware returns a middleware that logs every dispatch with its
// template, path, params and handler duration. The navigation ID is added
// when NavigationIDMiddleware runs before it.
func LoggingMiddleware(cfg LoggingConfig) mux.MiddlewareFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := cfg.Level

	return func(next mux.Handler) mux.Handler {
		return mux.HandlerFunc(func(ctx context.Context, m *mux.Match) {
			start := time.Now()
			next.Navigate(ctx, m)

			if !logger.Enabled(ctx, level) {
				return
			}

			attrs := []slog.Attr{
				slog.String("template", m.Template()),
				slog.String("path", m.Path),
				slog.Duration("duration", time.Since(start)),
			}

			if len(m.Params) > 0 {
				attrs = append(attrs, slog.Any("params", m.Params))
			}

			if id := NavigationIDFromContext(ctx); id != "" {
				attrs = append(attrs, slog.String("navigation_id", id))
			}

			logger.LogAttrs(ctx, level, "navigation", attrs...)
		})
	}
}
