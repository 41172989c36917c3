package commands

import "sigs.k8s.io/yaml"

// asYAML implements the `as_yaml` command: captured_output is parsed as
// JSON and re-serialized as YAML (§4.7).
func asYAML(ctx *Context) (Result, error) {
	out, err := yaml.JSONToYAML([]byte(ctx.CapturedOutput))
	if err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}
	return Result{CapturedOutput: string(out), Retcode: 0}, nil
}

// asJSON implements the `as_json` command: captured_output is parsed as
// YAML and re-serialized as JSON (§4.7).
func asJSON(ctx *Context) (Result, error) {
	out, err := yaml.YAMLToJSON([]byte(ctx.CapturedOutput))
	if err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}
	return Result{CapturedOutput: string(out), Retcode: 0}, nil
}
