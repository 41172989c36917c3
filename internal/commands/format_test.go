package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsYAML_ConvertsJSONCapturedOutput(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	ctx.CapturedOutput = `{"name":"app","version":1}`

	result, err := asYAML(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Retcode)
	assert.Contains(t, result.CapturedOutput, "name: app")
}

func TestAsYAML_InvalidJSONFails(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	ctx.CapturedOutput = `not json`
	result, err := asYAML(ctx)
	assert.Error(t, err)
	assert.Less(t, result.Retcode, 0)
}

func TestAsJSON_ConvertsYAMLCapturedOutput(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	ctx.CapturedOutput = "name: app\nversion: 1\n"

	result, err := asJSON(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Retcode)
	assert.Contains(t, result.CapturedOutput, `"name":"app"`)
}

func TestAsJSONThenAsYAML_RoundTrips(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	ctx.CapturedOutput = "name: app\n"

	jsonResult, err := asJSON(ctx)
	require.NoError(t, err)
	ctx.CapturedOutput = jsonResult.CapturedOutput

	yamlResult, err := asYAML(ctx)
	require.NoError(t, err)
	assert.Contains(t, yamlResult.CapturedOutput, "name: app")
}
