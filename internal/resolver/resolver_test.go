package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedded-awesome/yakka/internal/manifest"
)

func newStore(t *testing.T, manifests map[string]string) *manifest.Store {
	t.Helper()
	store := manifest.NewStore()
	for id, yaml := range manifests {
		m, err := manifest.Parse([]byte(yaml), id, id+".yaml")
		require.NoError(t, err)
		store.Add(m)
	}
	return store
}

func TestResolve_TransitiveClosure(t *testing.T) {
	store := newStore(t, map[string]string{
		"app": `
requires:
  components: [lib]
  features: [logging]
`,
		"lib": `
provides:
  features: [lib-feature]
`,
		"logging": `
provides:
  features: [logging]
`,
	})

	result, err := Resolve(store, []string{"app"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ProjectValid, result.Terminal)
	assert.True(t, result.RequiredComponents["app"])
	assert.True(t, result.RequiredComponents["lib"])
	assert.True(t, result.RequiredComponents["logging"])
	assert.True(t, result.RequiredFeatures["logging"])
	assert.Empty(t, result.UnprovidedFeatures)
}

func TestResolve_UnknownComponent(t *testing.T) {
	store := newStore(t, map[string]string{
		"app": `
requires:
  components: [missing]
`,
	})

	result, err := Resolve(store, []string{"app"}, nil)
	assert.Error(t, err)
	assert.Equal(t, ProjectHasUnknownComponents, result.Terminal)
	assert.Contains(t, result.Unknown, "missing")
}

func TestResolve_UnresolvedFeature(t *testing.T) {
	store := newStore(t, map[string]string{
		"app": `
requires:
  features: [nothing-provides-this]
`,
	})

	result, err := Resolve(store, []string{"app"}, nil)
	assert.Error(t, err)
	assert.Equal(t, ProjectHasUnresolvedRequirements, result.Terminal)
	assert.True(t, result.UnprovidedFeatures["nothing-provides-this"])
}

func TestResolve_MultipleReplacements(t *testing.T) {
	store := newStore(t, map[string]string{
		"app": `
requires:
  components: [first, second]
`,
		"first": `
replaces:
  component: base
`,
		"second": `
replaces:
  component: base
`,
	})

	result, err := Resolve(store, []string{"app"}, nil)
	assert.Error(t, err)
	assert.Equal(t, ProjectHasMultipleReplacements, result.Terminal)
}

func TestResolve_ReplacementResetsEpoch(t *testing.T) {
	store := newStore(t, map[string]string{
		"app": `
requires:
  components: [base]
`,
		"base": `
provides:
  features: [base-feature]
`,
		"override": `
replaces:
  component: base
provides:
  features: [base-feature, extra-feature]
`,
	})

	// Seed both app (wants base) and the component that replaces it; the
	// replacement commit at step 4 re-seeds U_c from C0 so app's requires
	// route to override instead of base.
	result, err := Resolve(store, []string{"app", "override"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ProjectValid, result.Terminal)
	assert.True(t, result.RequiredComponents["override"])
	assert.False(t, result.RequiredComponents["base"])
	assert.True(t, result.ProvidedFeatures["extra-feature"])
}

func TestResolve_SupportsFeatureFragment(t *testing.T) {
	store := newStore(t, map[string]string{
		"app": `
requires:
  components: [toolchain]
  features: [debug]
`,
		"toolchain": `
provides:
  features: [debug]
supports:
  features:
    debug:
      requires:
        components: [debugger]
`,
		"debugger": `
provides:
  features: [debugger-ready]
`,
	})

	result, err := Resolve(store, []string{"app"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ProjectValid, result.Terminal)
	assert.True(t, result.RequiredComponents["debugger"])
}

func TestResolve_IncompleteChoiceReported(t *testing.T) {
	store := newStore(t, map[string]string{
		"app": `
requires:
  components: [toolkit]
`,
		"toolkit": `
choices:
  compiler:
    features: [gcc, clang]
`,
	})

	result, err := Resolve(store, []string{"app"}, nil)
	require.NoError(t, err)
	require.Len(t, result.ChoiceErrors, 1)
	assert.ErrorContains(t, result.ChoiceErrors[0], "compiler")
}

func TestConditionSatisfied(t *testing.T) {
	rf := map[string]bool{"a": true, "b": true}

	assert.True(t, ConditionSatisfied([]string{"a", "b"}, nil, rf))
	assert.False(t, ConditionSatisfied([]string{"a", "c"}, nil, rf))
	assert.True(t, ConditionSatisfied(nil, []string{"c"}, rf))
	assert.False(t, ConditionSatisfied(nil, []string{"a"}, rf))
}
