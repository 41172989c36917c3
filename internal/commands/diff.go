package commands

import (
	"encoding/json"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// diffCommand implements the `diff` blueprint command (§4.7):
// `{left|left_file, right|right_file}` → a JSON Patch (RFC 6902)
// describing how to turn left into right, replacing captured_output.
//
// An inline `left`/`right` value is a literal rendered string; the
// `*_file` variant renders a path and parses its contents as JSON.
// A side missing from the parameter diffs against JSON null.
func diffCommand(ctx *Context, param any) (Result, error) {
	spec, ok := param.(map[string]any)
	if !ok {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, fmt.Errorf("diff: expected an object parameter")
	}

	left, err := diffSide(ctx, spec, "left", "left_file")
	if err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}
	right, err := diffSide(ctx, spec, "right", "right_file")
	if err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}

	var out []byte
	if patch, err := jsonpatch.CreatePatch(left, right); err == nil {
		out, err = json.Marshal(patch)
		if err != nil {
			return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, fmt.Errorf("diff: %w", err)
		}
	} else {
		// CreatePatch walks object members; a scalar top level (a bare
		// `left`/`right` string, say) isn't an object, so fall back to
		// a single whole-value replacement, same as a one-element
		// nlohmann::json::diff result for two differing scalars.
		out, err = json.Marshal(scalarReplacePatch(left, right))
		if err != nil {
			return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, fmt.Errorf("diff: %w", err)
		}
	}

	return Result{CapturedOutput: string(out), Retcode: 0}, nil
}

func scalarReplacePatch(left, right []byte) []map[string]any {
	if string(left) == string(right) {
		return []map[string]any{}
	}
	var value any
	_ = json.Unmarshal(right, &value)
	return []map[string]any{{"op": "replace", "path": "", "value": value}}
}

// diffSide resolves one side of a diff parameter to its JSON encoding:
// the `*_file` key parses file contents as JSON, the bare key renders
// its value as a literal JSON string, and neither present is JSON null.
func diffSide(ctx *Context, spec map[string]any, inlineKey, fileKey string) ([]byte, error) {
	if raw, ok := spec[fileKey]; ok {
		path, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("diff: %s must be a string", fileKey)
		}
		data, err := os.ReadFile(resolvePath(ctx, path))
		if err != nil {
			return nil, err
		}
		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("diff: parsing %s: %w", fileKey, err)
		}
		return json.Marshal(parsed)
	}

	if raw, ok := spec[inlineKey]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("diff: %s must be a string", inlineKey)
		}
		rendered := ctx.Renderer.RenderSafe(s, ctx.TemplateCtx)
		return json.Marshal(rendered)
	}

	return json.Marshal(nil)
}
