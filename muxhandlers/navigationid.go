package muxhandlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/vitalvas/navmux/mux"
)

type navigationIDKey struct{}

// NavigationIDFromContext returns the navigation ID stored in the context by
// NavigationIDMiddleware. Returns an empty string if no ID is present.
func NavigationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(navigationIDKey{}).(string); ok {
		return id
	}

	return ""
}

// NavigationIDConfig configures the Navigation ID middleware behaviour.
type NavigationIDConfig struct {
	// GenerateFunc is an optional callback that returns a new unique ID.
	// It receives the match being dispatched. Defaults to GenerateUUIDv4.
	GenerateFunc func(m *mux.Match) string

	// TrustIncoming, when true, reuses an ID already present in the
	// dispatch context instead of generating a new one.
	TrustIncoming bool
}

// NavigationIDMiddleware returns a middleware that attaches an ID to every
// dispatch. Downstream handlers read it with NavigationIDFromContext.
func NavigationIDMiddleware(cfg NavigationIDConfig) mux.MiddlewareFunc {
	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	return func(next mux.Handler) mux.Handler {
		return mux.HandlerFunc(func(ctx context.Context, m *mux.Match) {
			id := ""
			if trustIncoming {
				id = NavigationIDFromContext(ctx)
			}

			if id == "" {
				id = generate(m)
			}

			if id != "" {
				ctx = context.WithValue(ctx, navigationIDKey{}, id)
			}

			next.Navigate(ctx, m)
		})
	}
}

// WithNavigationID returns a copy of ctx carrying id. Use it with
// TrustIncoming to correlate a dispatch with an outer operation.
func WithNavigationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, navigationIDKey{}, id)
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// See RFC 9562, section 5.4.
func GenerateUUIDv4(_ *mux.Match) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// See RFC 9562, section 5.7.
func GenerateUUIDv7(_ *mux.Match) string {
	return uuid.Must(uuid.NewV7()).String()
}
