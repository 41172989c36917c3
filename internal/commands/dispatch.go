package commands

import "fmt"

// ParseProcess converts a blueprint's raw `process` list (each entry a
// single-key map) into an ordered Step list.
func ParseProcess(raw []map[string]any) []Step {
	steps := make([]Step, 0, len(raw))
	for _, entry := range raw {
		for name, param := range entry {
			steps = append(steps, Step{Name: name, Param: param})
			break // single-key object, per §4.7
		}
	}
	return steps
}

// Run executes a process list in order, threading captured_output
// through the pipeline (§4.7). It stops at the first step reporting a
// negative retcode or error, matching the task engine's single-process
// abort semantics.
func Run(ctx *Context, steps []Step) (Result, error) {
	result := Result{CapturedOutput: ctx.CapturedOutput}

	for _, step := range steps {
		r, err := dispatch(ctx, step)
		if err != nil {
			return r, err
		}
		ctx.CapturedOutput = r.CapturedOutput
		result = r
		if result.Retcode < 0 {
			return result, nil
		}
	}

	return result, nil
}

func dispatch(ctx *Context, step Step) (Result, error) {
	switch step.Name {
	case "echo":
		return echo(ctx, step.Param)
	case "execute":
		return execute(ctx, step.Param, false)
	case "shell":
		return execute(ctx, step.Param, true)
	case "template":
		return runTemplate(ctx, step.Param)
	case "save":
		return save(ctx, step.Param)
	case "create_directory":
		return createDirectory(ctx, step.Param)
	case "verify":
		return verify(ctx, step.Param)
	case "rm":
		return remove(ctx, step.Param)
	case "rmdir":
		return removeDir(ctx, step.Param)
	case "copy":
		return copyFiles(ctx, step.Param)
	case "cat":
		return cat(ctx, step.Param)
	case "regex":
		return regexCommand(ctx, step.Param)
	case "pack":
		return pack(ctx, step.Param)
	case "as_json":
		return asJSON(ctx)
	case "as_yaml":
		return asYAML(ctx)
	case "diff":
		return diffCommand(ctx, step.Param)
	default:
		if tool, ok := ctx.Tools[step.Name]; ok {
			return runTool(ctx, tool, step.Param)
		}
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1},
			fmt.Errorf("unknown blueprint command %q", step.Name)
	}
}
