// Package templating renders blueprint dependency names, tool
// invocations and blueprint command parameters against the project
// summary, using the REDESIGN FLAGS' per-task context struct in place
// of the original's stateful template callbacks.
package templating

import (
	"bytes"
	"fmt"
	"text/template"
)

// Context is the per-render callback set (§4.4, §9 design notes: "model
// them as a per-task context struct passed to the template engine rather
// than as ambient captures"). Every field is optional: a missing capture
// or an empty CurDir renders as the empty string, and a nil Select or
// Aggregate makes its template function return an error, failing that
// render.
type Context struct {
	// Captures holds regex capture groups for `reg i` (index 0 = full match).
	Captures []string

	// CurDir is the blueprint's parent path, for `curdir()`.
	CurDir string

	// Select resolves `select({feature|component: name}...)`: the name
	// of the one alternative that is required, or an error if none or
	// more than one is.
	Select func(alternatives map[string]string) (string, error)

	// Aggregate folds a json-pointer-shaped path across every
	// component's manifest and the summary `data` tree, for `aggregate(ptr)`.
	Aggregate func(ptr string) (any, error)
}

// Renderer renders templates against a fixed data value (typically the
// project summary) with a per-call Context supplying the blueprint
// matcher's local callbacks.
type Renderer struct {
	data any
}

// NewRenderer creates a renderer bound to the given data value (the
// project summary, or a subset of it).
func NewRenderer(data any) *Renderer {
	return &Renderer{data: data}
}

// Render parses and executes a template string. A parse or execution
// failure is returned to the caller rather than panicking; per §7 error
// kind 7 ("template render failure"), the blueprint matcher drops the
// dependency whose name failed to render, and most commands render
// through RenderSafe, which substitutes an empty string.
func (r *Renderer) Render(text string, ctx Context) (string, error) {
	tmpl, err := template.New("yakka").Funcs(funcMap(ctx)).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// RenderSafe is Render with the §7/§9 fallback already applied: a
// failure logs nothing itself (the caller owns logging) and returns "".
func (r *Renderer) RenderSafe(text string, ctx Context) string {
	out, err := r.Render(text, ctx)
	if err != nil {
		return ""
	}
	return out
}

func funcMap(ctx Context) template.FuncMap {
	capture := func(i int) string {
		if i < 0 || i >= len(ctx.Captures) {
			return ""
		}
		return ctx.Captures[i]
	}
	return template.FuncMap{
		// reg returns capture group i (index 0 = full match) for both the
		// blueprint matcher and the regex command; there is no `$`
		// function, as text/template only accepts identifiers as names.
		"reg": capture,
		"curdir": func() string {
			return ctx.CurDir
		},
		"select": func(alternatives map[string]any) (string, error) {
			if ctx.Select == nil {
				return "", fmt.Errorf("select: no selector available in this context")
			}
			asStrings := make(map[string]string, len(alternatives))
			for k, v := range alternatives {
				if s, ok := v.(string); ok {
					asStrings[k] = s
				}
			}
			return ctx.Select(asStrings)
		},
		"aggregate": func(ptr string) (any, error) {
			if ctx.Aggregate == nil {
				return nil, fmt.Errorf("aggregate: no aggregator available in this context")
			}
			return ctx.Aggregate(ptr)
		},
	}
}
