package mux

// Match is the result of a successful match. It is built fresh for every
// attempt and never modified afterwards.
type Match struct {
	// Path is the matched location path, without the query.
	Path string `json:"path"`

	// Params holds captured variables. It is nil when the pattern has no
	// Variable segments.
	Params map[string]string `json:"params,omitempty"`

	// Query is present only when the location carried a query string.
	Query *Query `json:"query,omitempty"`

	// State is present only when the location carried state.
	State any `json:"state,omitempty"`

	// Route is the pattern that matched.
	Route *Pattern `json:"-"`
}

// Template returns the template of the matched pattern.
func (m *Match) Template() string {
	if m.Route == nil {
		return ""
	}
	return m.Route.template
}

// Match walks the table in order and returns the first pattern that accepts
// loc. A pattern is rejected outright when it has more segments than the
// location; a shorter pattern only constrains the leading segments. The
// second return value is false when no pattern matches.
func (t *Table) Match(loc Location) (*Match, bool) {
	for _, p := range t.patterns {
		if params, ok := p.match(loc.Segments); ok {
			return &Match{
				Path:   loc.Path,
				Params: params,
				Query:  loc.Query,
				State:  loc.State,
				Route:  p,
			}, true
		}
	}
	return nil, false
}

// MatchString parses location as a Raw input and matches it.
func (t *Table) MatchString(location string) (*Match, bool) {
	return t.Match(ParseLocation(Raw(location)))
}

// match compares the pattern segment by segment against parts. The params
// map is allocated on the first captured variable.
func (p *Pattern) match(parts []string) (map[string]string, bool) {
	if len(p.segments) > len(parts) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range p.segments {
		if !seg.Match(parts[i]) {
			return nil, false
		}
		if seg.Kind == Variable {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg.Text] = parts[i]
		}
	}

	return params, true
}
