package commands

import (
	"regexp"
	"strings"

	"github.com/embedded-awesome/yakka/internal/templating"
	"gopkg.in/yaml.v3"
)

// regexCommand implements the `regex` blueprint command (§4.7): a
// search pattern applied to captured_output, combined with exactly one
// of replace/match/to_yaml. split optionally breaks captured_output
// into lines before the pattern is applied to each one independently;
// prefix/suffix bracket each rendered match in match mode.
func regexCommand(ctx *Context, param any) (Result, error) {
	obj, ok := param.(map[string]any)
	if !ok {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}

	search, _ := obj["search"].(string)
	re, err := regexp.Compile(search)
	if err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}

	lines := []string{ctx.CapturedOutput}
	if split, ok := obj["split"].(string); ok && split != "" {
		lines = strings.Split(ctx.CapturedOutput, split)
	}

	prefix, _ := obj["prefix"].(string)
	suffix, _ := obj["suffix"].(string)

	switch {
	case obj["replace"] != nil:
		replace, _ := obj["replace"].(string)
		var out []string
		for _, line := range lines {
			out = append(out, re.ReplaceAllString(line, replace))
		}
		return Result{CapturedOutput: strings.Join(out, "\n"), Retcode: 0}, nil

	case obj["match"] != nil:
		tmplStr, _ := obj["match"].(string)
		var rendered []string
		for _, line := range lines {
			for _, groups := range re.FindAllStringSubmatch(line, -1) {
				r, err := ctx.Renderer.Render(tmplStr, templating.Context{
					Captures: groups,
					CurDir:   ctx.TemplateCtx.CurDir,
					Select:   ctx.TemplateCtx.Select,
					Aggregate: ctx.TemplateCtx.Aggregate,
				})
				if err != nil {
					return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
				}
				rendered = append(rendered, prefix+r+suffix)
			}
		}
		return Result{CapturedOutput: strings.Join(rendered, "\n"), Retcode: 0}, nil

	case obj["to_yaml"] != nil:
		var all [][]string
		for _, line := range lines {
			all = append(all, re.FindAllStringSubmatch(line, -1)...)
		}
		asYAML, err := yaml.Marshal(all)
		if err != nil {
			return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
		}
		return Result{CapturedOutput: string(asYAML), Retcode: 0}, nil

	default:
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}
}
