package mux

import "strings"

// Input is a location handed to the parser. It is either Raw or Structured;
// the variant is chosen by the caller, never sniffed from the value.
type Input interface {
	parts() (location string, state any)
}

// Raw is a plain "path?query" location string with no state.
type Raw string

func (r Raw) parts() (string, any) {
	return string(r), nil
}

// Structured is a location carrying opaque state attached by the navigation
// layer. Path may still contain an embedded "?query".
type Structured struct {
	Path  string
	State any
}

func (s Structured) parts() (string, any) {
	return s.Path, s.State
}

// Location is a parsed navigation target.
type Location struct {
	// Path is the location text before the first "?".
	Path string

	// Segments is Path split on "/", without any normalization of ".",
	// ".." or trailing slashes. It is never empty: "" yields [""] and
	// "/" yields ["", ""].
	Segments []string

	// Query is nil when the location carried no query text.
	Query *Query

	// State is nil when the location carried none.
	State any
}

// ParseLocation decomposes in into path segments, query and state.
// A nil Input parses as the empty path. ParseLocation never fails.
func ParseLocation(in Input) Location {
	var (
		raw   string
		state any
	)
	if in != nil {
		raw, state = in.parts()
	}

	path, query, _ := strings.Cut(raw, "?")

	return Location{
		Path:     path,
		Segments: strings.Split(path, "/"),
		Query:    ParseQuery(query),
		State:    state,
	}
}
