package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffCommand_NoDifferenceYieldsEmptyPatch(t *testing.T) {
	ctx := newCtx(t, t.TempDir())

	result, err := diffCommand(ctx, map[string]any{"left": "app", "right": "app"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Retcode)
	assert.JSONEq(t, "[]", result.CapturedOutput)
}

func TestDiffCommand_InlineValuesProduceReplaceOp(t *testing.T) {
	ctx := newCtx(t, t.TempDir())

	result, err := diffCommand(ctx, map[string]any{"left": "v1", "right": "v2"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Retcode)

	var patch []map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.CapturedOutput), &patch))
	require.Len(t, patch, 1)
	assert.Equal(t, "replace", patch[0]["op"])
	assert.Equal(t, "v2", patch[0]["value"])
}

func TestDiffCommand_FileObjectsDiffByKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "left.json"), []byte(`{"name":"app","version":1}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "right.json"), []byte(`{"name":"app","version":2}`), 0o644))

	ctx := newCtx(t, dir)
	result, err := diffCommand(ctx, map[string]any{"left_file": "left.json", "right_file": "right.json"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Retcode)

	var patch []map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.CapturedOutput), &patch))
	require.Len(t, patch, 1)
	assert.Equal(t, "/version", patch[0]["path"])
	assert.Equal(t, float64(2), patch[0]["value"])
}

func TestDiffCommand_MissingFileFails(t *testing.T) {
	ctx := newCtx(t, t.TempDir())

	result, err := diffCommand(ctx, map[string]any{"left_file": "missing.json", "right": "x"})
	assert.Error(t, err)
	assert.Less(t, result.Retcode, 0)
}

func TestDiffCommand_OmittedSideDiffsAgainstNull(t *testing.T) {
	ctx := newCtx(t, t.TempDir())

	result, err := diffCommand(ctx, map[string]any{"right": "v2"})
	require.NoError(t, err)

	var patch []map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.CapturedOutput), &patch))
	require.Len(t, patch, 1)
	assert.Equal(t, "v2", patch[0]["value"])
}

func TestDiffCommand_NonObjectParameterFails(t *testing.T) {
	ctx := newCtx(t, t.TempDir())

	result, err := diffCommand(ctx, "not-an-object")
	assert.Error(t, err)
	assert.Less(t, result.Retcode, 0)
}
