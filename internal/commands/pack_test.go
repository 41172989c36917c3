package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack_AppendsBigEndianBytes(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	result, err := pack(ctx, map[string]any{
		"format": "C",
		"data":   []any{0x41},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41}, []byte(result.CapturedOutput))
}

func TestPack_AppendsToExistingCapturedOutput(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	ctx.CapturedOutput = "header:"
	result, err := pack(ctx, map[string]any{
		"format": "L",
		"data":   []any{1},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{'h', 'e', 'a', 'd', 'e', 'r', ':', 0, 0, 0, 1}, []byte(result.CapturedOutput))
}

func TestPack_PadByteConsumesNoValue(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	result, err := pack(ctx, map[string]any{
		"format": "Cx",
		"data":   []any{7},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0}, []byte(result.CapturedOutput))
}

func TestPack_InsufficientValuesErrors(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	_, err := pack(ctx, map[string]any{"format": "LL", "data": []any{1}})
	assert.Error(t, err)
}

func TestPack_NonNumericValueErrors(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	_, err := pack(ctx, map[string]any{"format": "C", "data": []any{"not-a-number"}})
	assert.Error(t, err)
}

func TestPack_UnsupportedFormatCharacterErrors(t *testing.T) {
	ctx := newCtx(t, t.TempDir())
	_, err := pack(ctx, map[string]any{"format": "Z", "data": []any{1}})
	assert.Error(t, err)
}
