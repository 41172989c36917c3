package project

import (
	"fmt"
	"sort"
	"strings"

	"github.com/embedded-awesome/yakka/internal/resolver"
)

// buildSelect implements the blueprint matcher's `select({name: kind,
// ...})` callback (§4.4 step 2): kind is "feature" or "component"; the
// one name among the alternatives whose kind is actually required wins.
// Zero or more than one match is an error.
func buildSelect(result *resolver.Result) func(map[string]string) (string, error) {
	return func(alternatives map[string]string) (string, error) {
		var matches []string
		for name, kind := range alternatives {
			switch kind {
			case "feature":
				if result.RequiredFeatures[name] {
					matches = append(matches, name)
				}
			case "component":
				if result.RequiredComponents[name] {
					matches = append(matches, name)
				}
			}
		}
		sort.Strings(matches)

		switch len(matches) {
		case 0:
			return "", fmt.Errorf("select: none of the given alternatives is required")
		case 1:
			return matches[0], nil
		default:
			return "", fmt.Errorf("select: more than one alternative is required: %s", strings.Join(matches, ", "))
		}
	}
}

// buildAggregate implements the blueprint matcher's `aggregate(ptr)`
// callback (§4.4 step 2): folds a json-pointer-shaped path across every
// required component's manifest and the project summary's data tree,
// collecting every value found at that path.
func buildAggregate(result *resolver.Result, data map[string]any) func(string) (any, error) {
	return func(ptr string) (any, error) {
		segs := pointerSegments(ptr)

		ids := make([]string, 0, len(result.Manifests))
		for id := range result.Manifests {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		var values []any
		for _, id := range ids {
			if v, ok := lookupPointer(result.Manifests[id].Raw, segs); ok {
				values = append(values, v)
			}
		}
		if data != nil {
			if v, ok := lookupPointer(data, segs); ok {
				values = append(values, v)
			}
		}

		return values, nil
	}
}

func pointerSegments(ptr string) []string {
	trimmed := strings.Trim(ptr, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func lookupPointer(root map[string]any, segs []string) (any, bool) {
	var cur any = root
	for _, seg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
