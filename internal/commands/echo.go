package commands

import "github.com/embedded-awesome/yakka/internal/output"

// echo renders its parameter (or passes captured_output through when
// absent) and emits it to the console; captured_output is unchanged.
func echo(ctx *Context, param any) (Result, error) {
	text := ctx.CapturedOutput
	if s, ok := param.(string); ok {
		text = ctx.Renderer.RenderSafe(s, ctx.TemplateCtx)
	}
	output.Println(text)
	return Result{CapturedOutput: ctx.CapturedOutput, Retcode: 0}, nil
}
