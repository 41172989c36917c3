package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_NilSrcIsNoop(t *testing.T) {
	dst := map[string]any{"a": 1}
	got, err := Merge(dst, nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, dst, got)
}

func TestMerge_NilDstClonesSrc(t *testing.T) {
	src := map[string]any{"a": []any{1, 2}}
	got, err := Merge(nil, src, "", nil)
	require.NoError(t, err)
	assert.Equal(t, src, got)

	got.(map[string]any)["a"].([]any)[0] = 99
	assert.Equal(t, 1, src["a"].([]any)[0], "Merge must not mutate src")
}

func TestMerge_ObjectsDeepMergeByKey(t *testing.T) {
	dst := map[string]any{"a": 1, "nested": map[string]any{"x": 1}}
	src := map[string]any{"b": 2, "nested": map[string]any{"y": 2}}

	got, err := Merge(dst, src, "", nil)
	require.NoError(t, err)

	want := map[string]any{
		"a":      1,
		"b":      2,
		"nested": map[string]any{"x": 1, "y": 2},
	}
	assert.Equal(t, want, got)
}

func TestMerge_ArraysAppendByDefault(t *testing.T) {
	dst := []any{1, 2}
	src := []any{2, 3}

	got, err := Merge(dst, src, "/list", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 2, 3}, got)
}

func TestMerge_ArrayUniqueStrategyDropsDuplicates(t *testing.T) {
	strategies := StrategyTable{"/list": StrategyUnique}
	dst := []any{1, 2}
	src := []any{2, 3}

	got, err := Merge(dst, src, "/list", strategies)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, got)
}

func TestMerge_ArraySortStrategyOrdersNumerically(t *testing.T) {
	strategies := StrategyTable{"/list": StrategySort}
	dst := []any{3, 1}
	src := []any{2}

	got, err := Merge(dst, src, "/list", strategies)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, got)
}

func TestMerge_ArrayOverwriteStrategyReplaces(t *testing.T) {
	strategies := StrategyTable{"/list": StrategyOverwrite}
	dst := []any{1, 2}
	src := []any{9}

	got, err := Merge(dst, src, "/list", strategies)
	require.NoError(t, err)
	assert.Equal(t, []any{9}, got)
}

func TestMerge_ScalarToScalarPromotesToArray(t *testing.T) {
	got, err := Merge("a", "b", "/val", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestMerge_ScalarToArrayAppends(t *testing.T) {
	got, err := Merge([]any{1}, 2, "/list", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, got)
}

func TestMerge_MaxStrategyKeepsLarger(t *testing.T) {
	strategies := StrategyTable{"/timeout": StrategyMax}
	got, err := Merge(10, 20, "/timeout", strategies)
	require.NoError(t, err)
	assert.Equal(t, 20, got)

	got, err = Merge(30, 20, "/timeout", strategies)
	require.NoError(t, err)
	assert.Equal(t, 30, got)
}

func TestMerge_MinStrategyKeepsSmaller(t *testing.T) {
	strategies := StrategyTable{"/timeout": StrategyMin}
	got, err := Merge(10, 20, "/timeout", strategies)
	require.NoError(t, err)
	assert.Equal(t, 10, got)
}

func TestMerge_MaxStrategyRejectsNonNumeric(t *testing.T) {
	strategies := StrategyTable{"/timeout": StrategyMax}
	_, err := Merge("a", 20, "/timeout", strategies)
	assert.Error(t, err)
}

func TestMerge_TypeMismatchErrors(t *testing.T) {
	_, err := Merge(map[string]any{"a": 1}, []any{1}, "/x", nil)
	assert.Error(t, err)

	_, err = Merge(map[string]any{"a": 1}, "scalar", "/x", nil)
	assert.Error(t, err)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	dst := map[string]any{"list": []any{1}}
	src := map[string]any{"list": []any{2}}

	got, err := Merge(dst, src, "", nil)
	require.NoError(t, err)

	got.(map[string]any)["list"] = append(got.(map[string]any)["list"].([]any), 3)
	assert.Equal(t, []any{1}, dst["list"], "dst must be left untouched")
	assert.Equal(t, []any{2}, src["list"], "src must be left untouched")
}

func TestBuildStrategyTable_AggregatesFragments(t *testing.T) {
	fragment1 := map[string]any{
		"tags": "unique",
	}
	fragment2 := map[string]any{
		"priority": map[string]any{"strategy": "max"},
		"nested": map[string]any{
			"inner": "sort",
		},
	}

	table := BuildStrategyTable(fragment1, fragment2)

	assert.Equal(t, StrategyUnique, table.Lookup("/tags"))
	assert.Equal(t, StrategyMax, table.Lookup("/priority"))
	assert.Equal(t, StrategySort, table.Lookup("/nested/inner"))
	assert.Equal(t, StrategyDefault, table.Lookup("/unknown"))
}

func TestStrategyTable_LookupOnNilTable(t *testing.T) {
	var table StrategyTable
	assert.Equal(t, StrategyDefault, table.Lookup("/anything"))
}
