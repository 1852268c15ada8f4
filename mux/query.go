package mux

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
)

// QueryValue is one decoded query parameter. A key written without "="
// (as in "?debug") has Flag set and an empty Value.
type QueryValue struct {
	Value string
	Flag  bool
}

// String returns the value, or "true" for a flag.
func (v QueryValue) String() string {
	if v.Flag {
		return "true"
	}
	return v.Value
}

// Any returns true for a flag and the string value otherwise.
func (v QueryValue) Any() any {
	if v.Flag {
		return true
	}
	return v.Value
}

// Query holds decoded query parameters. Keys are unique and remember the
// order of their first appearance; a repeated key keeps its position and
// takes the last value.
type Query struct {
	keys   []string
	values map[string]QueryValue
}

// ParseQuery decodes raw query text (without the leading "?"). It splits on
// "&", then each pair on the first "=", trimming surrounding whitespace from
// both key and value. Percent-encoding is left untouched. Empty text yields
// nil, meaning "no query".
func ParseQuery(raw string) *Query {
	if raw == "" {
		return nil
	}

	q := &Query{values: make(map[string]QueryValue)}
	for _, pair := range strings.Split(raw, "&") {
		key, value, hasValue := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)

		v := QueryValue{Flag: true}
		if hasValue {
			v = QueryValue{Value: strings.TrimSpace(value)}
		}

		q.set(key, v)
	}

	return q
}

func (q *Query) set(key string, v QueryValue) {
	if _, exists := q.values[key]; !exists {
		q.keys = append(q.keys, key)
	}
	q.values[key] = v
}

// Get returns the value stored under key.
func (q *Query) Get(key string) (QueryValue, bool) {
	if q == nil {
		return QueryValue{}, false
	}
	v, ok := q.values[key]
	return v, ok
}

// Keys returns the parameter names in first-appearance order.
func (q *Query) Keys() []string {
	if q == nil {
		return nil
	}
	return slices.Clone(q.keys)
}

// Len returns the number of distinct parameters.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.keys)
}

// Map returns the parameters as a map of string or bool values.
func (q *Query) Map() map[string]any {
	if q == nil {
		return nil
	}
	m := make(map[string]any, len(q.keys))
	for _, k := range q.keys {
		m[k] = q.values[k].Any()
	}
	return m
}

// MarshalJSON encodes the query as a JSON object in key order. Flags are
// encoded as true, other values as strings.
func (q *Query) MarshalJSON() ([]byte, error) {
	if q == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range q.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(q.values[k].Any())
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
