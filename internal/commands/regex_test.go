package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexCommand_Replace(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	ctx.CapturedOutput = "foo bar foo"

	result, err := regexCommand(ctx, map[string]any{"search": "foo", "replace": "baz"})
	require.NoError(t, err)
	assert.Equal(t, "baz bar baz", result.CapturedOutput)
}

func TestRegexCommand_ReplaceWithSplit(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	ctx.CapturedOutput = "a=1,b=2"

	result, err := regexCommand(ctx, map[string]any{
		"search":  "=(.+)",
		"replace": ":$1",
		"split":   ",",
	})
	require.NoError(t, err)
	assert.Equal(t, "a:1\nb:2", result.CapturedOutput)
}

func TestRegexCommand_MatchRendersEachCapture(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	ctx.CapturedOutput = "key1=val1 key2=val2"

	result, err := regexCommand(ctx, map[string]any{
		"search": `(\w+)=(\w+)`,
		"match":  "{{reg 1}}:{{reg 2}}",
		"prefix": "[",
		"suffix": "]",
	})
	require.NoError(t, err)
	assert.Equal(t, "[key1:val1]\n[key2:val2]", result.CapturedOutput)
}

func TestRegexCommand_ToYAMLCollectsAllMatches(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	ctx.CapturedOutput = "a1 a2"

	result, err := regexCommand(ctx, map[string]any{"search": `a(\d)`, "to_yaml": true})
	require.NoError(t, err)
	assert.Contains(t, result.CapturedOutput, "1")
	assert.Contains(t, result.CapturedOutput, "2")
}

func TestRegexCommand_InvalidPatternFails(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	_, err := regexCommand(ctx, map[string]any{"search": "(unterminated", "replace": "x"})
	assert.Error(t, err)
}

func TestRegexCommand_NoModeFails(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	result, err := regexCommand(ctx, map[string]any{"search": "a"})
	require.NoError(t, err)
	assert.Less(t, result.Retcode, 0)
}
