// Package registry implements the kernel's canonical in-memory index of
// every loaded plugin function (spec §4.4).
//
// A Registry is built once, from the union of every loaded plugin's
// descriptor, and is immutable thereafter — mirroring the teacher
// codebase's GlobalPluginRegistry, minus the mutability that registry
// allows for hot-reload, since spec §4.4 requires the registry to be
// immutable once built.
package registry

import (
	"github.com/SkanUJkod/SkanUJkod/internal/loader"
	"github.com/SkanUJkod/SkanUJkod/internal/pluginapi"
	"github.com/SkanUJkod/SkanUJkod/internal/qid"
)

// entry is the registry's internal record for one plugin function: its
// descriptor plus which library it came from, for error messages.
type entry struct {
	fn       pluginapi.FunctionDescriptor
	pluginID string
	path     string
	order    int
}

// Registry is the immutable index built from a set of loaded plugins.
type Registry struct {
	byQID []entry
	index map[qid.QID]int // QID -> position in byQID, for O(1) lookup
}

// Build constructs a Registry from every successfully loaded plugin,
// preserving the loader's stable load order (spec §4.3's "stable load
// order across runs" flows directly into the registry's enumeration
// order, which the planner relies on for deterministic sibling ordering).
func Build(loaded []loader.LoadedPlugin) *Registry {
	r := &Registry{index: make(map[qid.QID]int)}

	for _, lp := range loaded {
		for _, fn := range lp.Descriptor.Functions {
			r.byQID = append(r.byQID, entry{
				fn:       fn,
				pluginID: lp.Descriptor.ID,
				path:     lp.Path,
				order:    lp.LoadOrder,
			})
			r.index[fn.ID] = len(r.byQID) - 1
		}
	}

	return r
}

// Lookup returns the function descriptor for q, and whether it was
// found.
func (r *Registry) Lookup(q qid.QID) (pluginapi.FunctionDescriptor, bool) {
	i, ok := r.index[q]
	if !ok {
		return pluginapi.FunctionDescriptor{}, false
	}
	return r.byQID[i].fn, true
}

// Dependencies returns the ordered list of QIDs q depends on, or nil if
// q is not registered.
func (r *Registry) Dependencies(q qid.QID) []qid.QID {
	fn, ok := r.Lookup(q)
	if !ok {
		return nil
	}
	return fn.Dependencies
}

// Parameters returns the set of parameter keys q requires, or nil if q
// is not registered.
func (r *Registry) Parameters(q qid.QID) map[string]struct{} {
	fn, ok := r.Lookup(q)
	if !ok {
		return nil
	}
	params := make(map[string]struct{}, len(fn.Parameters))
	for _, p := range fn.Parameters {
		params[p] = struct{}{}
	}
	return params
}

// Enumerate returns every registered QID in stable registry-build order
// (i.e. load order, then declaration order within a plugin) — the order
// `list` should print in (spec §6).
func (r *Registry) Enumerate() []qid.QID {
	qids := make([]qid.QID, len(r.byQID))
	for i, e := range r.byQID {
		qids[i] = e.fn.ID
	}
	return qids
}

// LibraryPath returns the path the plugin owning q was loaded from, for
// diagnostics such as the `list --verbose` output (SPEC_FULL §12.1).
func (r *Registry) LibraryPath(q qid.QID) (string, bool) {
	i, ok := r.index[q]
	if !ok {
		return "", false
	}
	return r.byQID[i].path, true
}

// Len reports how many plugin functions are registered.
func (r *Registry) Len() int {
	return len(r.byQID)
}
