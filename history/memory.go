package history

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process history stack. It implements History and
// Traverser and is safe for concurrent use.
type Memory struct {
	Notifier

	mu      sync.Mutex
	entries []Entry
	index   int
}

// NewMemory returns a history whose only entry is initial with state.
// An empty initial location is allowed and means "nothing loaded yet".
func NewMemory(initial string, state any) *Memory {
	return &Memory{
		entries: []Entry{newEntry(initial, state)},
	}
}

// NewEntryID returns a new time-ordered entry identifier.
func NewEntryID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func newEntry(location string, state any) Entry {
	return Entry{ID: NewEntryID(), Location: location, State: state}
}

// Current returns the entry under the cursor.
func (m *Memory) Current() Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.index]
}

// Push drops every entry after the cursor, appends a new entry and moves
// the cursor onto it, then notifies listeners.
func (m *Memory) Push(location string, state any) {
	e := newEntry(location, state)

	m.mu.Lock()
	m.entries = append(m.entries[:m.index+1], e)
	m.index++
	m.mu.Unlock()

	m.Notify(Event{Kind: Push, Entry: e})
}

// Replace overwrites the entry under the cursor, then notifies listeners.
func (m *Memory) Replace(location string, state any) {
	e := newEntry(location, state)

	m.mu.Lock()
	m.entries[m.index] = e
	m.mu.Unlock()

	m.Notify(Event{Kind: Replace, Entry: e})
}

// Go moves the cursor by delta and raises a Pop event carrying the target
// entry. A zero or out-of-range delta changes nothing and returns false.
func (m *Memory) Go(delta int) bool {
	m.mu.Lock()
	target := m.index + delta
	if delta == 0 || target < 0 || target >= len(m.entries) {
		m.mu.Unlock()
		return false
	}
	m.index = target
	e := m.entries[target]
	m.mu.Unlock()

	m.Notify(Event{Kind: Pop, Entry: e})
	return true
}

// Back is Go(-1).
func (m *Memory) Back() bool {
	return m.Go(-1)
}

// Forward is Go(1).
func (m *Memory) Forward() bool {
	return m.Go(1)
}

// Entries returns a copy of the stack, oldest first.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries)
}

// Index returns the cursor position within Entries.
func (m *Memory) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}
