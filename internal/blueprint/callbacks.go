package blueprint

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/embedded-awesome/yakka/internal/templating"
)

// ResolveDependencies renders every dependency declaration of a match
// through the templating engine and dispatches each rendered value by
// type (§4.4 step 2-3). A template render failure is non-fatal per §7
// error kind 7: that one dependency is dropped rather than aborting the
// match.
func ResolveDependencies(match Match, renderer *templating.Renderer, ctx templating.Context) (Match, error) {
	ctx.Captures = match.RegexMatches
	ctx.CurDir = match.ParentPath

	var deps []Dependency
	for _, decl := range match.depends {
		rendered, err := renderer.Render(decl.Name, ctx)
		if err != nil {
			continue
		}

		switch resolveType(decl.Type, rendered) {
		case TypeFile:
			fileDeps, err := readDepFile(rendered)
			if err != nil {
				return match, fmt.Errorf("reading dep file %q: %w", rendered, err)
			}
			for _, d := range fileDeps {
				deps = append(deps, Dependency{Name: d, Type: TypeDefault})
			}
		case TypeData:
			deps = append(deps, Dependency{Name: ensureDataPrefix(rendered), Type: TypeData})
		default:
			for _, d := range splitDefault(rendered) {
				deps = append(deps, Dependency{Name: d, Type: TypeDefault})
			}
		}
	}

	match.Dependencies = deps
	return match, nil
}

func resolveType(declared string, rendered string) DependencyType {
	switch declared {
	case "file":
		return TypeFile
	case "data":
		return TypeData
	}
	if strings.HasPrefix(strings.TrimSpace(rendered), DataPrefix) {
		return TypeData
	}
	return TypeDefault
}

func ensureDataPrefix(s string) string {
	if strings.HasPrefix(s, DataPrefix) {
		return s
	}
	return DataPrefix + s
}

// readDepFile parses a GCC-style `.d` dependency file: a `target:` rule
// whose right-hand side lists whitespace-separated paths, continued
// across lines with a trailing backslash.
func readDepFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	joined := strings.ReplaceAll(string(data), "\\\n", " ")
	var paths []string
	for _, line := range strings.Split(joined, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := strings.Index(line, ":"); idx >= 0 {
			line = line[idx+1:]
		}
		for _, field := range strings.Fields(line) {
			paths = append(paths, strings.TrimPrefix(field, "./"))
		}
	}
	return paths, nil
}

// splitDefault handles a DEFAULT-typed rendered dependency: a YAML array
// literal splits into its elements, each with a leading "./" stripped;
// otherwise the whole rendered text is the single dependency name.
func splitDefault(rendered string) []string {
	trimmed := strings.TrimSpace(rendered)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		var items []string
		if err := yaml.Unmarshal([]byte(trimmed), &items); err == nil {
			out := make([]string, len(items))
			for i, item := range items {
				out[i] = strings.TrimPrefix(item, "./")
			}
			return out
		}
	}
	return []string{strings.TrimPrefix(trimmed, "./")}
}
