package history

// Kind tells how the current entry changed.
type Kind int

const (
	// Push appended a new entry.
	Push Kind = iota

	// Replace overwrote the current entry.
	Replace

	// Pop moved to an existing entry (back/forward).
	Pop
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Push:
		return "push"
	case Replace:
		return "replace"
	case Pop:
		return "pop"
	default:
		return "unknown"
	}
}

// Entry is one position in the history stack.
type Entry struct {
	// ID uniquely identifies the entry. Generated as a UUIDv7.
	ID string

	// Location is the "path?query" text of the entry.
	Location string

	// State is the opaque value attached when the entry was written.
	State any
}

// Event is a location-changed notification.
type Event struct {
	Kind  Kind
	Entry Entry
}

// Listener receives location-changed notifications.
type Listener func(Event)

// Subscription is returned by Subscribe. Unsubscribe stops delivery and is
// safe to call more than once.
type Subscription interface {
	Unsubscribe()
}

// History is the platform navigation-history capability.
//
// Push and Replace must raise the same notification a back/forward
// navigation raises, synchronously, before returning.
type History interface {
	Current() Entry
	Push(location string, state any)
	Replace(location string, state any)
	Subscribe(fn Listener) Subscription
}

// Traverser is implemented by histories that support back/forward moves.
// Go reports whether the move was accepted.
type Traverser interface {
	Go(delta int) bool
}
