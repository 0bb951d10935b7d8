package planner_test

import (
	"testing"

	"github.com/SkanUJkod/SkanUJkod/internal/envelope"
	"github.com/SkanUJkod/SkanUJkod/internal/kernelerrors"
	"github.com/SkanUJkod/SkanUJkod/internal/loader"
	"github.com/SkanUJkod/SkanUJkod/internal/params"
	"github.com/SkanUJkod/SkanUJkod/internal/planner"
	"github.com/SkanUJkod/SkanUJkod/internal/pluginapi"
	"github.com/SkanUJkod/SkanUJkod/internal/qid"
	"github.com/SkanUJkod/SkanUJkod/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandle(d pluginapi.DependencyMap, p params.Map) (envelope.Envelope, error) {
	return envelope.New(nil, ""), nil
}

func q(t *testing.T, plugin, function string) qid.QID {
	t.Helper()
	id, err := qid.New(plugin, function)
	require.NoError(t, err)
	return id
}

func buildRegistry(t *testing.T, fns ...pluginapi.FunctionDescriptor) *registry.Registry {
	t.Helper()
	byPlugin := map[string][]pluginapi.FunctionDescriptor{}
	for _, fn := range fns {
		byPlugin[fn.ID.Plugin] = append(byPlugin[fn.ID.Plugin], fn)
	}
	var loaded []loader.LoadedPlugin
	order := 0
	// Deterministic iteration: rebuild in the order functions were passed,
	// grouping by first-seen plugin.
	seenPlugin := map[string]bool{}
	for _, fn := range fns {
		if seenPlugin[fn.ID.Plugin] {
			continue
		}
		seenPlugin[fn.ID.Plugin] = true
		loaded = append(loaded, loader.LoadedPlugin{
			Path:       fn.ID.Plugin + ".so",
			LoadOrder:  order,
			Descriptor: pluginapi.Descriptor{ID: fn.ID.Plugin, Functions: byPlugin[fn.ID.Plugin]},
		})
		order++
	}
	return registry.Build(loaded)
}

func TestPlanSingleFunctionNoDependencies(t *testing.T) {
	helloQ := q(t, "hello", "world")
	reg := buildRegistry(t, pluginapi.FunctionDescriptor{ID: helloQ, Handle: noopHandle})

	result, err := planner.Plan(helloQ, reg, map[string]struct{}{})
	require.NoError(t, err)
	assert.Equal(t, []qid.QID{helloQ}, result)
}

func TestPlanLinearChain(t *testing.T) {
	parseQ := q(t, "parse", "project")
	cfgQ := q(t, "cfg", "build")
	reg := buildRegistry(t,
		pluginapi.FunctionDescriptor{ID: parseQ, Parameters: []string{"project_path"}, Handle: noopHandle},
		pluginapi.FunctionDescriptor{ID: cfgQ, Dependencies: []qid.QID{parseQ}, Parameters: []string{"project_path"}, Handle: noopHandle},
	)

	result, err := planner.Plan(cfgQ, reg, map[string]struct{}{"project_path": {}})
	require.NoError(t, err)
	assert.Equal(t, []qid.QID{parseQ, cfgQ}, result)
}

func TestPlanDiamondRespectsDeclarationOrder(t *testing.T) {
	a := q(t, "a", "a")
	b := q(t, "b", "b")
	c := q(t, "c", "c")
	d := q(t, "d", "d")
	reg := buildRegistry(t,
		pluginapi.FunctionDescriptor{ID: a, Handle: noopHandle},
		pluginapi.FunctionDescriptor{ID: b, Dependencies: []qid.QID{a}, Handle: noopHandle},
		pluginapi.FunctionDescriptor{ID: c, Dependencies: []qid.QID{a}, Handle: noopHandle},
		pluginapi.FunctionDescriptor{ID: d, Dependencies: []qid.QID{b, c}, Handle: noopHandle},
	)

	result, err := planner.Plan(d, reg, map[string]struct{}{})
	require.NoError(t, err)
	assert.Equal(t, []qid.QID{a, b, c, d}, result)
}

func TestPlanRejectsCycle(t *testing.T) {
	x := q(t, "x", "x")
	y := q(t, "y", "y")
	reg := buildRegistry(t,
		pluginapi.FunctionDescriptor{ID: x, Dependencies: []qid.QID{y}, Handle: noopHandle},
		pluginapi.FunctionDescriptor{ID: y, Dependencies: []qid.QID{x}, Handle: noopHandle},
	)

	_, err := planner.Plan(x, reg, map[string]struct{}{})
	require.Error(t, err)
	kerr, ok := err.(*kernelerrors.KernelError)
	require.True(t, ok)
	assert.Equal(t, kernelerrors.DependencyCycle, kerr.Kind)
	assert.Contains(t, kerr.Details, "x::x -> y::y -> x::x")
}

func TestPlanRejectsUnknownTarget(t *testing.T) {
	reg := buildRegistry(t)
	_, err := planner.Plan(q(t, "nope", "nope"), reg, map[string]struct{}{})
	require.Error(t, err)
	kerr := err.(*kernelerrors.KernelError)
	assert.Equal(t, kernelerrors.UnknownTarget, kerr.Kind)
}

func TestPlanRejectsMissingDependency(t *testing.T) {
	missing := q(t, "missing", "dep")
	cfgQ := q(t, "cfg", "build")
	reg := buildRegistry(t,
		pluginapi.FunctionDescriptor{ID: cfgQ, Dependencies: []qid.QID{missing}, Handle: noopHandle},
	)

	_, err := planner.Plan(cfgQ, reg, map[string]struct{}{})
	require.Error(t, err)
	kerr := err.(*kernelerrors.KernelError)
	assert.Equal(t, kernelerrors.MissingDependency, kerr.Kind)
}

func TestPlanRejectsMissingParameter(t *testing.T) {
	cfgQ := q(t, "cfg", "build")
	reg := buildRegistry(t,
		pluginapi.FunctionDescriptor{ID: cfgQ, Parameters: []string{"threshold"}, Handle: noopHandle},
	)

	_, err := planner.Plan(cfgQ, reg, map[string]struct{}{"project_path": {}})
	require.Error(t, err)
	kerr := err.(*kernelerrors.KernelError)
	assert.Equal(t, kernelerrors.MissingParameter, kerr.Kind)
	assert.Contains(t, kerr.Details, "threshold")
}

func TestPlanIsDeterministicAcrossCalls(t *testing.T) {
	a := q(t, "a", "a")
	b := q(t, "b", "b")
	c := q(t, "c", "c")
	d := q(t, "d", "d")
	reg := buildRegistry(t,
		pluginapi.FunctionDescriptor{ID: a, Handle: noopHandle},
		pluginapi.FunctionDescriptor{ID: b, Dependencies: []qid.QID{a}, Handle: noopHandle},
		pluginapi.FunctionDescriptor{ID: c, Dependencies: []qid.QID{a}, Handle: noopHandle},
		pluginapi.FunctionDescriptor{ID: d, Dependencies: []qid.QID{b, c}, Handle: noopHandle},
	)

	first, err := planner.Plan(d, reg, map[string]struct{}{})
	require.NoError(t, err)
	second, err := planner.Plan(d, reg, map[string]struct{}{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
