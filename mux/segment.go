package mux

import "strings"

// SegmentKind identifies how a template segment is compared against a path part.
type SegmentKind int

const (
	// Literal requires the path part to be equal to the segment text.
	Literal SegmentKind = iota

	// Variable matches any path part and captures it under the segment text.
	Variable

	// PrefixWildcard matches a path part starting with the segment text.
	// Written as "text*"; a bare "*" matches anything.
	PrefixWildcard

	// SuffixWildcard matches a path part ending with the segment text.
	// Written as "*text".
	SuffixWildcard
)

// String returns the lowercase name of the kind.
func (k SegmentKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Variable:
		return "variable"
	case PrefixWildcard:
		return "prefix"
	case SuffixWildcard:
		return "suffix"
	default:
		return "unknown"
	}
}

// Segment is one "/"-delimited unit of a compiled route template.
type Segment struct {
	Kind SegmentKind

	// Text is the literal text, the variable name, or the wildcard
	// prefix/suffix. It is empty for a bare "*" and for the empty
	// literal produced by a leading "/".
	Text string
}

// String renders the segment back into template syntax.
func (s Segment) String() string {
	switch s.Kind {
	case Variable:
		return ":" + s.Text
	case PrefixWildcard:
		return s.Text + "*"
	case SuffixWildcard:
		return "*" + s.Text
	default:
		return s.Text
	}
}

// Match reports whether part satisfies the segment. Variables match any part.
func (s Segment) Match(part string) bool {
	switch s.Kind {
	case Variable:
		return true
	case PrefixWildcard:
		return strings.HasPrefix(part, s.Text)
	case SuffixWildcard:
		return strings.HasSuffix(part, s.Text)
	default:
		return part == s.Text
	}
}

// Tokenize splits a route template on "/" and classifies every part.
//
// Rules are checked in order: a leading ":" makes a Variable, a trailing "*"
// makes a PrefixWildcard, a leading "*" makes a SuffixWildcard, anything else
// is a Literal. There is no escaping, so ":" and "*" cannot be matched
// literally at those positions. Tokenize never fails; the empty template
// yields a single empty Literal.
func Tokenize(template string) []Segment {
	parts := strings.Split(template, "/")
	segments := make([]Segment, len(parts))

	for i, part := range parts {
		segments[i] = tokenizePart(part)
	}

	return segments
}

func tokenizePart(part string) Segment {
	switch {
	case strings.HasPrefix(part, ":"):
		return Segment{Kind: Variable, Text: part[1:]}
	case strings.HasSuffix(part, "*"):
		return Segment{Kind: PrefixWildcard, Text: part[:len(part)-1]}
	case strings.HasPrefix(part, "*"):
		return Segment{Kind: SuffixWildcard, Text: part[1:]}
	default:
		return Segment{Kind: Literal, Text: part}
	}
}
