// Package routefile loads ordered route definitions from YAML.
//
//	routes:
//	  - name: completed
//	    template: /completed
//	  - name: active
//	    template: /active
//	  - name: all
//	    template: /*
//	    description: every other location
//
// Entry order is registration order, so it decides ties between templates
// with the same number of segments.
package routefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vitalvas/navmux/mux"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyTemplate is returned for an entry without a template.
	ErrEmptyTemplate = errors.New("routefile: empty template")

	// ErrDuplicateName is returned when two entries share a name.
	ErrDuplicateName = errors.New("routefile: duplicate route name")
)

// Definition is one route entry.
type Definition struct {
	Name        string `yaml:"name" json:"name,omitempty"`
	Template    string `yaml:"template" json:"template"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// File is a decoded route file.
type File struct {
	Routes []Definition `yaml:"routes" json:"routes"`
}

// Load decodes and validates a route file. Unknown fields are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("routefile: decode: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("routefile: %w", err)
	}
	defer fh.Close()

	return Load(fh)
}

// Validate checks every entry has a template and that names, when set,
// are unique.
func (f *File) Validate() error {
	names := make(map[string]int, len(f.Routes))

	for i, def := range f.Routes {
		if def.Template == "" {
			return fmt.Errorf("%w: entry %d", ErrEmptyTemplate, i)
		}

		if def.Name == "" {
			continue
		}

		if prev, ok := names[def.Name]; ok {
			return fmt.Errorf("%w: %q at entries %d and %d", ErrDuplicateName, def.Name, prev, i)
		}
		names[def.Name] = i
	}

	return nil
}

// MuxRoutes turns the definitions into mux routes in file order. resolve
// supplies the handler for each definition; a nil resolve, or a nil
// handler, yields a route that matches without dispatching.
func (f *File) MuxRoutes(resolve func(def Definition) mux.Handler) []mux.Route {
	routes := make([]mux.Route, 0, len(f.Routes))

	for _, def := range f.Routes {
		var handler mux.Handler
		if resolve != nil {
			handler = resolve(def)
		}

		routes = append(routes, mux.NewRoute(def.Template, handler))
	}

	return routes
}

// Lookup returns the definition with the given name.
func (f *File) Lookup(name string) (Definition, bool) {
	for _, def := range f.Routes {
		if def.Name == name {
			return def, true
		}
	}

	return Definition{}, false
}
