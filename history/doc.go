// Package history models the platform navigation-history stack that the
// mux navigator reads locations from and writes navigations to.
//
// The History interface covers the four operations the engine needs: read
// the current entry, push a new entry, replace the current entry, and
// subscribe to location-changed notifications. Histories that can move
// through existing entries also implement Traverser.
//
// # In-memory history
//
// Memory is an in-process stack, useful for tests, command line tools and
// hosts that keep navigation state on the server:
//
//	h := history.NewMemory("/", nil)
//	sub := h.Subscribe(func(e history.Event) {
//	    fmt.Println(e.Kind, e.Entry.Location, e.Entry.State)
//	})
//	defer sub.Unsubscribe()
//
//	h.Push("/active", map[string]string{"from": "filter"}) // push /active map[from:filter]
//	h.Push("/completed", nil)                               // push /completed <nil>
//	h.Back()                                                // pop /active map[from:filter]
//
// Notifications are delivered synchronously, in subscription order, on the
// goroutine that caused them. No lock is held while listeners run, so a
// listener may navigate again.
//
// # Remote history
//
// The wshistory subpackage bridges a browser's history over a WebSocket.
package history
