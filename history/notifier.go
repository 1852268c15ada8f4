package history

import "sync"

// Notifier is an ordered set of listeners. The zero value is ready to use.
// History implementations embed it to provide Subscribe.
type Notifier struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener
}

type listener struct {
	id uint64
	fn Listener
}

// Subscribe adds fn to the set. Listeners are called in subscription order.
func (n *Notifier) Subscribe(fn Listener) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, listener{id: id, fn: fn})

	return &subscription{notifier: n, id: id}
}

// Notify calls every current listener with e. The listener set is copied
// before the calls, so listeners may subscribe, unsubscribe or navigate.
func (n *Notifier) Notify(e Event) {
	n.mu.Lock()
	listeners := make([]listener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	for _, l := range listeners {
		l.fn(e)
	}
}

// Len returns the number of active listeners.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, l := range n.listeners {
		if l.id == id {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

type subscription struct {
	notifier *Notifier
	id       uint64
	once     sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.notifier.remove(s.id)
	})
}
