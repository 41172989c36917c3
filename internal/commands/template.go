package commands

import "os"

// runTemplate implements the `template` blueprint command (§4.7): a bare
// string is rendered inline against the summary/template context; an
// object form selects its source via `template_file` or `template`, and
// its data via an inline `data` value or a `data_file` path, rendering
// the source against that data instead of the ambient summary.
func runTemplate(ctx *Context, param any) (Result, error) {
	switch v := param.(type) {
	case string:
		return Result{CapturedOutput: ctx.Renderer.RenderSafe(v, ctx.TemplateCtx), Retcode: 0}, nil
	case map[string]any:
		return runTemplateObject(ctx, v)
	default:
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}
}

func runTemplateObject(ctx *Context, obj map[string]any) (Result, error) {
	source, err := templateSource(ctx, obj)
	if err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}

	renderer := ctx.Renderer
	if data, ok := obj["data"]; ok {
		renderer = newScopedRenderer(data)
	} else if path, ok := obj["data_file"].(string); ok {
		data, err := readYAMLFile(resolvePath(ctx, path))
		if err != nil {
			return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
		}
		renderer = newScopedRenderer(data)
	}

	rendered, err := renderer.Render(source, ctx.TemplateCtx)
	if err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}
	return Result{CapturedOutput: rendered, Retcode: 0}, nil
}

func templateSource(ctx *Context, obj map[string]any) (string, error) {
	if inline, ok := obj["template"].(string); ok {
		return inline, nil
	}
	if path, ok := obj["template_file"].(string); ok {
		data, err := os.ReadFile(resolvePath(ctx, path))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", nil
}
