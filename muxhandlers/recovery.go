package muxhandlers

import (
	"context"

	"github.com/vitalvas/navmux/mux"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the match being
	// dispatched and the recovered value when a panic occurs. When nil,
	// no logging is performed.
	LogFunc func(m *mux.Match, err any)
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream handlers. A panicking handler ends that dispatch only; the
// navigator keeps observing history.
func RecoveryMiddleware(cfg RecoveryConfig) mux.MiddlewareFunc {
	return func(next mux.Handler) mux.Handler {
		return mux.HandlerFunc(func(ctx context.Context, m *mux.Match) {
			defer func() {
				if err := recover(); err != nil {
					if cfg.LogFunc != nil {
						cfg.LogFunc(m, err)
					}
				}
			}()

			next.Navigate(ctx, m)
		})
	}
}
