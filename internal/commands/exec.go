package commands

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// execute renders its command-line parameter and runs it, capturing
// combined stdout/stderr into captured_output; a non-zero exit code N
// becomes the step's retcode -N (§4.7). viaShell runs it through the
// OS shell instead of exec'ing the binary directly; without it the line
// is split on whitespace and quotes are not interpreted.
func execute(ctx *Context, param any, viaShell bool) (Result, error) {
	line, ok := param.(string)
	if !ok {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}
	rendered := ctx.Renderer.RenderSafe(line, ctx.TemplateCtx)
	return runCommandLine(ctx, rendered, viaShell)
}

func runCommandLine(ctx *Context, rendered string, viaShell bool) (Result, error) {
	var cmd *exec.Cmd
	if viaShell {
		cmd = exec.CommandContext(context.Background(), "sh", "-c", rendered)
	} else {
		fields := strings.Fields(rendered)
		if len(fields) == 0 {
			return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
		}
		cmd = exec.CommandContext(context.Background(), fields[0], fields[1:]...)
	}
	if ctx.WorkDir != "" {
		cmd.Dir = ctx.WorkDir
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	retcode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		retcode = exitErr.ExitCode()
		if retcode >= 0 {
			retcode = -retcode
		}
		err = nil
	} else if err != nil {
		retcode = -1
	}

	return Result{CapturedOutput: out.String(), Retcode: retcode}, err
}

// runTool prepends a `tools.<name>` template to the rendered argument
// and runs it via execute (§4.7: "A command may also be a tool name").
func runTool(ctx *Context, toolTemplate string, param any) (Result, error) {
	arg, _ := param.(string)
	rendered := ctx.Renderer.RenderSafe(toolTemplate, ctx.TemplateCtx)
	if arg != "" {
		rendered = rendered + " " + ctx.Renderer.RenderSafe(arg, ctx.TemplateCtx)
	}
	return runCommandLine(ctx, rendered, false)
}
