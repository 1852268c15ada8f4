// Package mux compiles route templates and matches navigation locations
// against them.
//
// It is the routing core of a client-side navigation engine: templates are
// registered with handlers, compiled once into a Table, and every observed
// location (initial load, an explicit Push/Replace, or a back/forward
// notification from the platform history) is parsed, matched, and handed to
// the handler of the first matching template.
//
// # Templates
//
// A template is split on "/" into segments. Each segment is one of:
//
//	users     - literal, the path part must be equal
//	:id       - variable, matches any part and captures it as "id"
//	static*   - prefix wildcard, the part must start with "static"
//	*.json    - suffix wildcard, the part must end with ".json"
//	*         - bare wildcard, matches any part
//
// There is no escaping, no optional or regexp segments.
//
// # Match Order
//
// Compile sorts patterns by segment count, shortest first, keeping
// registration order among patterns of equal length. The first pattern that
// accepts a location wins:
//
//	t := mux.Compile(
//	    mux.RouteFunc("/completed", completed),
//	    mux.RouteFunc("/active", active),
//	    mux.RouteFunc("/*", all),
//	)
//	m, ok := t.MatchString("/active") // active, m.Path == "/active"
//
// A pattern longer than the location never matches. A shorter one matches
// when its segments accept the leading parts of the location:
//
//	t := mux.Compile(mux.RouteFunc("/static*", assets))
//	t.MatchString("/staticassets/logo.png") // matches on "staticassets"
//
// Specificity is segment count only. A two-segment wildcard is tried before
// a three-segment literal.
//
// # Locations
//
// ParseLocation accepts either a Raw string or a Structured value carrying
// opaque state. The text after the first "?" is decoded by ParseQuery:
//
//	loc := mux.ParseLocation(mux.Raw("/users/42?tab=info&debug"))
//	// loc.Segments == []string{"", "users", "42"}
//	// loc.Query: tab="info", debug=true (flag)
//
// Nothing is percent-decoded and paths are not normalized.
//
// # Navigator
//
// A Navigator binds tables to a history.History. Switch compiles the
// routes, dispatches the current location and then every location-changed
// notification until closed. Push and Replace write to the history, which
// raises the same notification a back/forward navigation raises:
//
//	h := history.NewMemory("/", nil)
//	nav := mux.NewNavigator(h, mux.WithLogger(logger))
//	sw := nav.Switch(
//	    mux.RouteFunc("/users/:id", func(ctx context.Context, m *mux.Match) {
//	        id, _ := mux.Param(ctx, "id")
//	        render(id, m.Query)
//	    }),
//	)
//	defer sw.Close()
//
//	nav.Push("/users/42?tab=info", map[string]string{"from": "list"})
//
// A location that matches nothing is not dispatched. Use WithMissHandler
// to observe such locations.
//
// # Middleware
//
// Handlers can be wrapped with MiddlewareFunc values, applied in
// registration order with the first one outermost:
//
//	nav.Use(func(next mux.Handler) mux.Handler {
//	    return mux.HandlerFunc(func(ctx context.Context, m *mux.Match) {
//	        log.Println("navigate", m.Template(), m.Path)
//	        next.Navigate(ctx, m)
//	    })
//	})
//
// The muxhandlers package provides recovery, navigation ID, logging,
// metrics and tracing middleware.
//
// # Concurrency
//
// Matching is synchronous and bounded by routes times segments. A Table is
// immutable after Compile and safe for concurrent use. Notifications are
// processed in the order the history delivers them.
package mux
