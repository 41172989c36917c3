// Package commands implements the blueprint command set (C8, §4.7): a
// fixed vocabulary of primitive build actions threaded through a
// captured-output pipeline.
package commands

import (
	"sync"

	"github.com/embedded-awesome/yakka/internal/templating"
)

// Step is one single-key `{command: param}` entry of a blueprint's
// `process` list.
type Step struct {
	Name  string
	Param any
}

// Context is the per-task execution environment a command step runs in:
// the captured-output pipeline value, the shared (lock-guarded) summary
// data tree a `save :/data/...` step writes into, the tool table for
// tool-name dispatch, and the template renderer/context used to render
// every templated parameter.
type Context struct {
	CapturedOutput string

	Data   map[string]any
	DataMu *sync.Mutex

	Tools map[string]string

	Renderer    *templating.Renderer
	TemplateCtx templating.Context

	// WorkDir anchors relative paths (the blueprint's parent path).
	WorkDir string
}

// Result is one step's outcome: its effect on captured_output and its
// return code (negative signals failure, §4.7/§7 error kind 8).
type Result struct {
	CapturedOutput string
	Retcode        int
}
