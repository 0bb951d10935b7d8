// Package params implements the run-scoped parameter map (spec §3, §4.7).
//
// A Map is assembled once by the CLI at the start of a run and shared,
// read-only, for the run's duration. The kernel never writes to a Map
// after the run begins (spec §3 invariant 7).
package params

import "github.com/SkanUJkod/SkanUJkod/internal/paramvalue"

// Map is an immutable, run-scoped mapping from parameter key to value.
type Map struct {
	values map[string]paramvalue.Value
}

// New builds a Map from a plain map, copying it so later mutation of the
// caller's map cannot leak into the kernel's view.
func New(values map[string]paramvalue.Value) Map {
	cp := make(map[string]paramvalue.Value, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Map{values: cp}
}

// Get returns the value for key and whether it was present.
func (m Map) Get(key string) (paramvalue.Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present in the map.
func (m Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the set of keys present, in no particular order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}

// Len reports the number of entries in the map.
func (m Map) Len() int {
	return len(m.values)
}
