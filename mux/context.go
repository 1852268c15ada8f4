package mux

import (
	"context"
	"errors"
)

// matchContextKey is an unexported type for the single context key.
type matchContextKey struct{}

// ctxKey is the context key used to store the dispatched match.
var ctxKey = matchContextKey{}

// CurrentMatch returns the match being dispatched, if any.
// This only works inside a handler (or middleware) invoked by a Switch
// because the match is stored in the dispatch context.
func CurrentMatch(ctx context.Context) *Match {
	if m, ok := ctx.Value(ctxKey).(*Match); ok {
		return m
	}
	return nil
}

// Params returns the captured route variables for the current dispatch, if any.
func Params(ctx context.Context) map[string]string {
	if m := CurrentMatch(ctx); m != nil {
		return m.Params
	}
	return nil
}

// Param returns the value of a single route variable by name and a boolean
// indicating whether the variable exists.
func Param(ctx context.Context, name string) (string, bool) {
	if m := CurrentMatch(ctx); m != nil && m.Params != nil {
		val, exists := m.Params[name]
		return val, exists
	}
	return "", false
}

// WithMatch returns a copy of ctx carrying m. This is intended for testing
// handlers outside of a Switch.
func WithMatch(ctx context.Context, m *Match) context.Context {
	return context.WithValue(ctx, ctxKey, m)
}

// Handler receives matched navigations. It is the sink a route template is
// bound to at registration time.
type Handler interface {
	Navigate(ctx context.Context, m *Match)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, m *Match)

// Navigate calls f(ctx, m).
func (f HandlerFunc) Navigate(ctx context.Context, m *Match) {
	f(ctx, m)
}

// MiddlewareFunc is a function which receives a Handler and returns another
// Handler. It can be used to wrap dispatch with additional behavior such as
// logging, panic recovery, metrics, etc.
type MiddlewareFunc func(Handler) Handler

// Middleware wraps handler with mw.
func (mw MiddlewareFunc) Middleware(handler Handler) Handler {
	return mw(handler)
}

// WalkFunc is the type of the function called for each pattern visited by
// Table.Walk, in match order.
type WalkFunc func(p *Pattern) error

// ErrNoTable is the panic value raised when a dispatch is attempted through
// a Switch that has no compiled table. Switches must come from
// Navigator.Switch.
var ErrNoTable = errors.New("mux: dispatch before routes were compiled")

// StopWalk is used as a return value from WalkFunc to end the walk early
// without reporting an error.
var StopWalk = errors.New("stop walking the table") //nolint:revive,staticcheck // sentinel, not a failure
