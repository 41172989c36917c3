package commands

import (
	"os"

	"github.com/embedded-awesome/yakka/internal/templating"
	"gopkg.in/yaml.v3"
)

// newScopedRenderer builds a renderer bound to an explicit data value,
// for template steps that render against something other than the
// ambient project summary (an inline `data` object or a `data_file`).
func newScopedRenderer(data any) *templating.Renderer {
	return templating.NewRenderer(data)
}

func readYAMLFile(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
