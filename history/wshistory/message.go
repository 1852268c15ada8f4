package wshistory

import "github.com/vitalvas/navmux/mux"

// MessageType identifies a bridge message.
type MessageType string

const (
	// TypeInit is sent by the browser once after connecting with its
	// current location. It is handled like a popstate, so listeners see
	// the page the browser loaded.
	TypeInit MessageType = "init"

	// TypePopState is sent by the browser after a back/forward move.
	TypePopState MessageType = "popstate"

	// TypePush asks the browser to push a history entry.
	TypePush MessageType = "push"

	// TypeReplace asks the browser to replace the current entry.
	TypeReplace MessageType = "replace"

	// TypeGo asks the browser to move Delta entries.
	TypeGo MessageType = "go"

	// TypeMatch reports a dispatched match to the browser.
	TypeMatch MessageType = "match"
)

// Message is the JSON frame exchanged with the browser.
type Message struct {
	Type     MessageType       `json:"type"`
	Location string            `json:"location,omitempty"`
	State    any               `json:"state,omitempty"`
	Delta    int               `json:"delta,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
	Query    *mux.Query        `json:"query,omitempty"`
}
