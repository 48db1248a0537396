// Package stats provides named counters for the optimizer, exported
// as CSV or printed human-readable.
package stats

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Counter is a single named statistic.
type Counter struct {
	name string
	desc string
	n    int64
}

// Inc increments the counter by one.
func (c *Counter) Inc() { c.n++ }

// Add increments the counter by d.
func (c *Counter) Add(d int64) { c.n += d }

// Value returns the current count.
func (c *Counter) Value() int64 { return c.n }

// Name returns the counter name used in the CSV export.
func (c *Counter) Name() string { return c.name }

// Desc returns the human-readable description.
func (c *Counter) Desc() string { return c.desc }

// Registry holds counters in registration order.
type Registry struct {
	counters []*Counter
	byName   map[string]*Counter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Counter)}
}

// New registers a counter and returns it. Registering a name twice
// returns the existing counter.
func (r *Registry) New(name, desc string) *Counter {
	if c, ok := r.byName[name]; ok {
		return c
	}
	c := &Counter{name: name, desc: desc}
	r.counters = append(r.counters, c)
	r.byName[name] = c
	return c
}

// Lookup returns the counter with the given name, or nil.
func (r *Registry) Lookup(name string) *Counter { return r.byName[name] }

// WriteCSV writes one "name,value" line per counter in registration
// order.
func (r *Registry) WriteCSV(w io.Writer) error {
	for _, c := range r.counters {
		if _, err := fmt.Fprintf(w, "%s,%d\n", c.name, c.n); err != nil {
			return err
		}
	}
	return nil
}

var statName = color.New(color.FgGreen)

// Fprint writes an aligned human-readable listing of all counters.
func (r *Registry) Fprint(w io.Writer) {
	width := 0
	for _, c := range r.counters {
		if len(c.name) > width {
			width = len(c.name)
		}
	}
	for _, c := range r.counters {
		fmt.Fprintf(w, "%s%*s %8d  %s\n",
			statName.Sprint(c.name), width-len(c.name), "", c.n, c.desc)
	}
}
