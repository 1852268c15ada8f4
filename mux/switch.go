package mux

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vitalvas/navmux/history"
)

// Switch is a compiled route table bound to a navigator's history.
// It is created by Navigator.Switch.
type Switch struct {
	nav   *Navigator
	table *Table
	sub   history.Subscription

	middlewares []MiddlewareFunc

	// handlerCache caches the middleware-wrapped handler per pattern
	// to avoid re-wrapping on every dispatch.
	handlerCache sync.Map // map[*Pattern]Handler

	closeOnce sync.Once
}

// Table returns the compiled table.
func (s *Switch) Table() *Table {
	return s.table
}

// Dispatch parses in, matches it against the table and invokes the matched
// handler with the match stored in the context. A nil in reads the
// history's current entry. It returns the match, or false when nothing
// matched, in which case no handler runs.
//
// Dispatch panics with ErrNoTable on a Switch not obtained from
// Navigator.Switch.
func (s *Switch) Dispatch(ctx context.Context, in Input) (*Match, bool) {
	if s == nil || s.table == nil || s.nav == nil {
		panic(ErrNoTable)
	}

	if in == nil {
		cur := s.nav.history.Current()
		in = Structured{Path: cur.Location, State: cur.State}
	}

	loc := ParseLocation(in)
	logger := s.nav.logger

	m, ok := s.table.Match(loc)
	if !ok {
		logger.Debug("no route matched", slog.String("path", loc.Path))
		if s.nav.missHandler != nil {
			s.nav.missHandler(ctx, loc)
		}
		return nil, false
	}

	logger.Debug("route matched",
		slog.String("template", m.Template()),
		slog.String("path", m.Path),
	)

	if h := s.handler(m.Route); h != nil {
		h.Navigate(WithMatch(ctx, m), m)
	}

	return m, true
}

// Close stops observing the history. It is safe to call more than once.
// Dispatch keeps working on a closed switch.
func (s *Switch) Close() {
	s.closeOnce.Do(func() {
		if s.sub != nil {
			s.sub.Unsubscribe()
		}
	})
}

func (s *Switch) onEvent(e history.Event) {
	s.Dispatch(s.nav.ctx, Structured{Path: e.Entry.Location, State: e.Entry.State})
}

func (s *Switch) handler(p *Pattern) Handler {
	if p.handler == nil {
		return nil
	}
	if len(s.middlewares) == 0 {
		return p.handler
	}
	if cached, ok := s.handlerCache.Load(p); ok {
		return cached.(Handler)
	}
	wrapped := s.applyMiddleware(p.handler)
	s.handlerCache.Store(p, wrapped)
	return wrapped
}

// applyMiddleware wraps the handler with the switch's middleware.
// The first registered middleware is the outermost.
func (s *Switch) applyMiddleware(handler Handler) Handler {
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		handler = s.middlewares[i].Middleware(handler)
	}
	return handler
}
