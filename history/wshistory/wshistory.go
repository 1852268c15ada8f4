// Package wshistory drives a remote browser history over a WebSocket.
//
// The browser side is a small script that forwards popstate events and
// applies push, replace and go requests to window.history. The server side
// is a history.History, so a mux.Navigator can route on it exactly as it
// does on an in-process history.Memory.
package wshistory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vitalvas/navmux/history"
	"github.com/vitalvas/navmux/mux"
)

const defaultWriteTimeout = 10 * time.Second

// ErrClosed is returned by writes after the read loop has stopped.
var ErrClosed = errors.New("wshistory: connection closed")

// Option configures a History.
type Option func(*History)

// WithLogger sets the logger used for protocol diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *History) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithWriteTimeout bounds every write to the connection.
func WithWriteTimeout(d time.Duration) Option {
	return func(h *History) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// WithInitial sets the current entry before the browser reports one.
func WithInitial(location string, state any) Option {
	return func(h *History) {
		h.current = history.Entry{
			ID:       history.NewEntryID(),
			Location: location,
			State:    state,
		}
	}
}

// History is a history.History backed by one browser connection.
//
// Browser notifications are delivered on the goroutine running Run, in the
// order they were received.
type History struct {
	history.Notifier

	conn         *websocket.Conn
	logger       *slog.Logger
	writeTimeout time.Duration

	mu      sync.Mutex
	current history.Entry

	writeMu sync.Mutex
	closed  bool
}

// New wraps conn. The caller must call Run to start receiving browser
// events.
func New(conn *websocket.Conn, opts ...Option) *History {
	h := &History{
		conn:         conn,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		writeTimeout: defaultWriteTimeout,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Current returns the last known browser entry.
func (h *History) Current() history.Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Push asks the browser to push location, records it as current and
// notifies listeners. A failed write is logged; local state still moves.
func (h *History) Push(location string, state any) {
	h.change(history.Push, TypePush, location, state)
}

// Replace asks the browser to replace its current entry, records it and
// notifies listeners.
func (h *History) Replace(location string, state any) {
	h.change(history.Replace, TypeReplace, location, state)
}

func (h *History) change(kind history.Kind, typ MessageType, location string, state any) {
	e := h.setCurrent(location, state)

	if err := h.send(Message{Type: typ, Location: location, State: state}); err != nil {
		h.logger.Warn("history write failed", "type", typ, "location", location, "error", err)
	}

	h.Notify(history.Event{Kind: kind, Entry: e})
}

// Go asks the browser to move delta entries. The resulting Pop notification
// arrives later as a popstate message. Go reports whether the request was
// sent.
func (h *History) Go(delta int) bool {
	if delta == 0 {
		return false
	}

	if err := h.send(Message{Type: TypeGo, Delta: delta}); err != nil {
		h.logger.Warn("history write failed", "type", TypeGo, "delta", delta, "error", err)
		return false
	}

	return true
}

// SendMatch reports m to the browser as a match message.
func (h *History) SendMatch(m *mux.Match) error {
	if m == nil {
		return nil
	}

	return h.send(Message{
		Type:     TypeMatch,
		Location: m.Path,
		State:    m.State,
		Params:   m.Params,
		Query:    m.Query,
	})
}

func (h *History) setCurrent(location string, state any) history.Entry {
	e := history.Entry{
		ID:       history.NewEntryID(),
		Location: location,
		State:    state,
	}

	h.mu.Lock()
	h.current = e
	h.mu.Unlock()

	return e
}

func (h *History) send(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("wshistory: encode %s: %w", msg.Type, err)
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if h.closed {
		return ErrClosed
	}

	if err := h.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
		return err
	}

	return h.conn.WriteMessage(websocket.TextMessage, data)
}

// Run reads browser messages until ctx is done or the connection closes.
// It closes the connection before returning. Run returns nil when the
// browser goes away and ctx.Err() after cancellation.
func (h *History) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			h.shutdown()
		case <-stop:
		}
	}()

	defer h.shutdown()

	for {
		_, data, err := h.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				return fmt.Errorf("wshistory: read: %w", err)
			}

			return nil
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("wshistory: decode message: %w", err)
		}

		h.handle(msg)
	}
}

func (h *History) handle(msg Message) {
	switch msg.Type {
	case TypeInit, TypePopState:
		e := h.setCurrent(msg.Location, msg.State)
		h.Notify(history.Event{Kind: history.Pop, Entry: e})

	default:
		h.logger.Warn("unknown message type", "type", msg.Type)
	}
}

func (h *History) shutdown() {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = h.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	h.conn.Close()
}
