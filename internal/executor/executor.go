// Package executor runs an execution plan (spec §4.6).
//
// The executor is single-threaded and cooperative (spec §5): it invokes
// each plugin function in plan order on the calling goroutine, memoizing
// results by QID as it goes, and aborts the run on the first failure
// without attempting recovery or retry.
package executor

import (
	"github.com/google/uuid"

	"github.com/SkanUJkod/SkanUJkod/internal/envelope"
	"github.com/SkanUJkod/SkanUJkod/internal/kernelerrors"
	"github.com/SkanUJkod/SkanUJkod/internal/logger"
	"github.com/SkanUJkod/SkanUJkod/internal/params"
	"github.com/SkanUJkod/SkanUJkod/internal/pluginapi"
	"github.com/SkanUJkod/SkanUJkod/internal/qid"
	"github.com/SkanUJkod/SkanUJkod/internal/registry"
)

// Executor runs one execution plan against a registry and parameter map.
// Create one per run — it is not safe to reuse across runs, since its
// memoization table is run-scoped (spec §3's lifecycle for result
// envelopes: created during execution, destroyed at end of run).
type Executor struct {
	reg   *registry.Registry
	runID string
	memo  map[qid.QID]envelope.Envelope
}

// New creates an Executor bound to reg. Each Executor is stamped with a
// fresh run ID (SPEC_FULL.md §11) so log lines from concurrent
// or sequential CLI invocations can be told apart.
func New(reg *registry.Registry) *Executor {
	return &Executor{
		reg:   reg,
		runID: uuid.NewString(),
		memo:  make(map[qid.QID]envelope.Envelope),
	}
}

// Run executes every QID in plan, in order, passing each plugin function
// its declared dependency results and the full parameter map. It returns
// the envelope produced by the plan's final step (the original target),
// or the first *kernelerrors.KernelError encountered.
func (e *Executor) Run(plan []qid.QID, parameters params.Map) (envelope.Envelope, error) {
	log := logger.Executor().With().Str("run_id", e.runID).Logger()

	var last envelope.Envelope
	for _, q := range plan {
		if _, already := e.memo[q]; already {
			// The plan's uniqueness already guarantees this never
			// happens (spec §3 invariant 5); checked defensively in
			// case a future planner change relaxes that guarantee
			// (spec §4.6).
			last = e.memo[q]
			continue
		}

		fn, ok := e.reg.Lookup(q)
		if !ok {
			// A well-formed plan only ever names registered QIDs; this
			// would indicate the registry changed under the plan.
			return envelope.Envelope{}, kernelerrors.NewMissingDependency("<plan>", q.String())
		}

		deps := make(map[qid.QID]envelope.Envelope, len(fn.Dependencies))
		for _, dep := range fn.Dependencies {
			result, ok := e.memo[dep]
			if !ok {
				// The planner guarantees every dependency precedes its
				// dependents in the plan; reaching here means the plan
				// handed to Run was not well-formed. Reported the same way
				// as any other missing-dependency condition so callers
				// never see a bare error escape the kernel's taxonomy.
				return envelope.Envelope{}, kernelerrors.NewMissingDependency(q.String(), dep.String())
			}
			deps[dep] = result
		}

		log.Debug().Str("qid", q.String()).Msg("invoking plugin function")
		result, err := fn.Handle(pluginapi.NewDependencyMap(deps), parameters)
		if err != nil {
			log.Error().Str("qid", q.String()).Err(err).Msg("plugin function failed")
			return envelope.Envelope{}, kernelerrors.NewPluginFunctionFailed(q.String(), err)
		}

		e.memo[q] = result
		last = result
	}

	return last, nil
}

// MemoSize reports how many results the executor has produced so far,
// used by tests asserting spec §8's "memoization table size equals plan
// length" property.
func (e *Executor) MemoSize() int {
	return len(e.memo)
}
