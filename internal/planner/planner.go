// Package planner turns a target QID into a deterministic execution plan
// (spec §4.5).
//
// Plan performs a depth-first traversal from the target over each
// function's declared dependencies, marking nodes permanently (visited)
// and temporarily (on-stack) in the classic cycle-detecting DFS shape,
// then emits QIDs in post-order so every function follows all of its
// dependencies. Sibling dependencies are visited in the order the
// registry reports them, which — combined with the registry's stable
// load order — makes the emitted plan a pure function of (registry
// contents, target): spec §8's "identical plans for identical inputs"
// testable property.
package planner

import (
	"github.com/SkanUJkod/SkanUJkod/internal/kernelerrors"
	"github.com/SkanUJkod/SkanUJkod/internal/logger"
	"github.com/SkanUJkod/SkanUJkod/internal/qid"
	"github.com/SkanUJkod/SkanUJkod/internal/registry"
)

// Lookup is the subset of *registry.Registry the planner needs, kept as
// an interface so tests can supply a minimal fake registry.
type Lookup interface {
	Lookup(q qid.QID) (dependencies []qid.QID, parameters map[string]struct{}, ok bool)
}

// registryAdapter adapts *registry.Registry to Lookup.
type registryAdapter struct {
	reg *registry.Registry
}

func (a registryAdapter) Lookup(q qid.QID) ([]qid.QID, map[string]struct{}, bool) {
	fn, ok := a.reg.Lookup(q)
	if !ok {
		return nil, nil, false
	}
	return fn.Dependencies, a.reg.Parameters(q), true
}

// Plan computes the execution plan for target against reg, checking that
// every plugin function in the resulting plan has all of its declared
// parameters present in paramKeys (spec §4.5's parameter check — only
// key presence matters, values are not needed for planning).
func Plan(target qid.QID, reg *registry.Registry, paramKeys map[string]struct{}) ([]qid.QID, error) {
	return plan(target, registryAdapter{reg: reg}, paramKeys)
}

func plan(target qid.QID, reg Lookup, paramKeys map[string]struct{}) ([]qid.QID, error) {
	log := logger.Planner()

	if _, _, ok := reg.Lookup(target); !ok {
		return nil, kernelerrors.NewUnknownTarget(target.String())
	}

	var order []qid.QID
	visited := make(map[qid.QID]bool)
	onStack := make(map[qid.QID]bool)
	var stack []qid.QID

	var visit func(q qid.QID) *kernelerrors.KernelError
	visit = func(q qid.QID) *kernelerrors.KernelError {
		if visited[q] {
			return nil
		}
		if onStack[q] {
			cyclePath := cycleFrom(stack, q)
			return kernelerrors.NewDependencyCycle(cyclePath)
		}

		// q is already known-registered here: either it's the target
		// (checked before the traversal starts) or a dependency whose
		// registration the caller verified before recursing.
		deps, _, _ := reg.Lookup(q)

		onStack[q] = true
		stack = append(stack, q)

		for _, dep := range deps {
			if _, _, depOK := reg.Lookup(dep); !depOK {
				return kernelerrors.NewMissingDependency(q.String(), dep.String())
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		onStack[q] = false
		visited[q] = true
		order = append(order, q)
		return nil
	}

	if err := visit(target); err != nil {
		return nil, err
	}

	for _, q := range order {
		_, params, _ := reg.Lookup(q)
		for key := range params {
			if _, ok := paramKeys[key]; !ok {
				return nil, kernelerrors.NewMissingParameter(q.String(), key)
			}
		}
	}

	log.Debug().Int("steps", len(order)).Str("target", target.String()).Msg("plan computed")
	return order, nil
}

// cycleFrom extracts the cycle participants from the traversal stack,
// starting at the point where q first appeared, in the order they appear
// on the stack (spec §4.5).
func cycleFrom(stack []qid.QID, q qid.QID) []string {
	start := 0
	for i, s := range stack {
		if s == q {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(stack)-start)
	for _, s := range stack[start:] {
		cycle = append(cycle, s.String())
	}
	return cycle
}
