// Package pluginapi defines the contract between the kernel and a
// compiled plugin shared library (spec §6).
//
// A plugin library is a Go shared object (built with
// `go build -buildmode=plugin`) that exports exactly one well-known
// symbol, EntrySymbol, bound to a func() Descriptor. The kernel invokes
// that symbol once at load time; everything the plugin advertises —
// every QID, dependency QID, and parameter name — must remain valid for
// the library's lifetime (the kernel never unloads a library once
// loaded; spec §5).
package pluginapi

import (
	"github.com/SkanUJkod/SkanUJkod/internal/envelope"
	"github.com/SkanUJkod/SkanUJkod/internal/params"
	"github.com/SkanUJkod/SkanUJkod/internal/qid"
)

// EntrySymbol is the exported symbol name every plugin shared library
// must define, with the signature `func() pluginapi.Descriptor`.
const EntrySymbol = "Describe"

// DependencyMap is the read-only, per-invocation view of a plugin
// function's declared dependencies, handed to its Handle. It contains
// exactly the QIDs the function declared (spec §6) — never more, never
// fewer.
type DependencyMap struct {
	results map[qid.QID]envelope.Envelope
}

// NewDependencyMap builds a DependencyMap from a plain map. Used by the
// executor to assemble the view passed into a Handle; plugin authors
// never construct one themselves.
func NewDependencyMap(results map[qid.QID]envelope.Envelope) DependencyMap {
	return DependencyMap{results: results}
}

// Get returns the envelope produced for dependency q, and whether it was
// present. A well-formed plan guarantees presence for every QID the
// function declared as a dependency (spec §3 invariant 4).
func (d DependencyMap) Get(q qid.QID) (envelope.Envelope, bool) {
	e, ok := d.results[q]
	return e, ok
}

// Len reports how many dependency results this view carries.
func (d DependencyMap) Len() int {
	return len(d.results)
}

// Handle is the uniform invocation contract every plugin function
// implements (spec §6): given its declared dependency results and the
// run's full parameter map, produce a result envelope or fail with a
// message. A Handle must not retain references to either argument beyond
// its return — both are only guaranteed valid for the duration of the
// call.
type Handle func(deps DependencyMap, parameters params.Map) (envelope.Envelope, error)

// FunctionDescriptor is what one plugin function advertises: its QID, the
// QIDs it depends on (may be empty), the parameter keys it requires (may
// be empty), and its invocable Handle.
type FunctionDescriptor struct {
	ID           qid.QID
	Dependencies []qid.QID
	Parameters   []string
	Handle       Handle
}

// Descriptor is what one loaded plugin library advertises: its own
// plugin_id and the set of functions it provides. Every FunctionDescriptor
// in Functions must have an ID whose Plugin half equals ID, byte for byte
// (spec §4.3) — the loader rejects a Descriptor that violates this before
// it ever reaches the registry.
type Descriptor struct {
	ID        string
	Functions []FunctionDescriptor
}
