package mux

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/vitalvas/navmux/history"
)

// Navigator connects a platform history to compiled route tables.
//
// It is constructed by the application's composition root and passed to
// whatever needs to navigate; there is no package-level instance.
//
//	h := history.NewMemory("/", nil)
//	nav := mux.NewNavigator(h)
//	sw := nav.Switch(
//	    mux.RouteFunc("/users/:id", showUser),
//	    mux.RouteFunc("/*", fallback),
//	)
//	defer sw.Close()
//
//	nav.Push("/users/42?tab=info", nil)
type Navigator struct {
	history     history.History
	logger      *slog.Logger
	middlewares []MiddlewareFunc
	missHandler func(context.Context, Location)
	ctx         context.Context
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger used for dispatch diagnostics.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithMiddleware appends middleware applied to every dispatched handler.
func WithMiddleware(mw ...MiddlewareFunc) Option {
	return func(n *Navigator) {
		n.middlewares = append(n.middlewares, mw...)
	}
}

// WithMissHandler sets a function observing locations that matched no
// route. It is not a dispatch: no handler runs for a miss.
func WithMissHandler(fn func(ctx context.Context, loc Location)) Option {
	return func(n *Navigator) {
		n.missHandler = fn
	}
}

// WithContext sets the base context for dispatches triggered by history
// notifications. Defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(n *Navigator) {
		if ctx != nil {
			n.ctx = ctx
		}
	}
}

// NewNavigator returns a navigator writing to and observing h.
func NewNavigator(h history.History, opts ...Option) *Navigator {
	n := &Navigator{
		history: h,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Use appends middleware applied to handlers of switches created afterwards.
func (n *Navigator) Use(mw ...MiddlewareFunc) {
	n.middlewares = append(n.middlewares, mw...)
}

// History returns the underlying history.
func (n *Navigator) History() history.History {
	return n.history
}

// Push appends location to the history. The history notifies every active
// switch synchronously, the same way a back/forward navigation does.
func (n *Navigator) Push(location string, state any) {
	n.logger.Debug("navigation push", slog.String("location", location))
	n.history.Push(location, state)
}

// Replace overwrites the current history entry with location and notifies
// every active switch synchronously.
func (n *Navigator) Replace(location string, state any) {
	n.logger.Debug("navigation replace", slog.String("location", location))
	n.history.Replace(location, state)
}

// Go moves through the history by delta. It returns false when the history
// cannot traverse or the move is out of range.
func (n *Navigator) Go(delta int) bool {
	t, ok := n.history.(history.Traverser)
	if !ok {
		n.logger.Debug("history does not support traversal")
		return false
	}
	return t.Go(delta)
}

// Back is Go(-1).
func (n *Navigator) Back() bool {
	return n.Go(-1)
}

// Forward is Go(1).
func (n *Navigator) Forward() bool {
	return n.Go(1)
}

// Switch compiles routes once and subscribes the resulting table to history
// notifications until the returned Switch is closed. When the history
// already has a current location it is dispatched immediately, as the
// initial load.
func (n *Navigator) Switch(routes ...Route) *Switch {
	s := &Switch{
		nav:         n,
		table:       Compile(routes...),
		middlewares: slices.Clone(n.middlewares),
	}

	s.sub = n.history.Subscribe(s.onEvent)

	if cur := n.history.Current(); cur.Location != "" {
		s.Dispatch(n.ctx, Structured{Path: cur.Location, State: cur.State})
	}

	return s
}
