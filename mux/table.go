package mux

import (
	"cmp"
	"context"
	"slices"
)

// Route binds a template to the handler its matches are dispatched to.
type Route struct {
	Template string
	Handler  Handler
}

// NewRoute returns a Route for template and handler.
func NewRoute(template string, handler Handler) Route {
	return Route{Template: template, Handler: handler}
}

// RouteFunc returns a Route for template and a handler function.
func RouteFunc(template string, f func(ctx context.Context, m *Match)) Route {
	return Route{Template: template, Handler: HandlerFunc(f)}
}

// Pattern is a compiled route template.
type Pattern struct {
	template string
	segments []Segment
	handler  Handler
	index    int
}

// Template returns the template string the pattern was compiled from.
func (p *Pattern) Template() string {
	return p.template
}

// Segments returns a copy of the compiled segments.
func (p *Pattern) Segments() []Segment {
	return slices.Clone(p.segments)
}

// Len returns the number of segments. Shorter patterns are tried first.
func (p *Pattern) Len() int {
	return len(p.segments)
}

// Handler returns the handler bound to the pattern at registration.
func (p *Pattern) Handler() Handler {
	return p.handler
}

// Index returns the registration position of the pattern.
func (p *Pattern) Index() int {
	return p.index
}

// Table is a compiled, immutable set of patterns in match order.
// A Table is safe for concurrent use.
type Table struct {
	patterns []*Pattern
}

// Compile tokenizes every route and orders the patterns by segment count,
// ascending. Routes with the same count keep their registration order.
// Duplicate templates are all kept; the first registered one always wins.
func Compile(routes ...Route) *Table {
	patterns := make([]*Pattern, len(routes))
	for i, route := range routes {
		patterns[i] = &Pattern{
			template: route.Template,
			segments: Tokenize(route.Template),
			handler:  route.Handler,
			index:    i,
		}
	}

	slices.SortStableFunc(patterns, func(a, b *Pattern) int {
		return cmp.Compare(a.Len(), b.Len())
	})

	return &Table{patterns: patterns}
}

// Len returns the number of patterns in the table.
func (t *Table) Len() int {
	return len(t.patterns)
}

// Patterns returns the patterns in match order.
func (t *Table) Patterns() []*Pattern {
	return slices.Clone(t.patterns)
}

// Walk calls walkFn for each pattern in match order. Returning StopWalk
// ends the walk and Walk returns nil; any other error is returned as is.
func (t *Table) Walk(walkFn WalkFunc) error {
	for _, p := range t.patterns {
		if err := walkFn(p); err != nil {
			if err == StopWalk {
				return nil
			}
			return err
		}
	}
	return nil
}
