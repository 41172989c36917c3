// Package merge implements the manifest deep-merge of §4.1: folding a
// component's declaration fragments into the project summary under a
// type-directed default rule, or a per-path strategy when the aggregated
// schema declares one.
//
// No generic deep-merge library in the example corpus exposes a
// path-keyed strategy table (the closest, mergo-style libraries apply one
// global strategy to an entire merge), so this is a small, purpose-built
// engine over map[string]any — see DESIGN.md's stdlib-justified section.
package merge

import (
	"fmt"

	oerrors "github.com/embedded-awesome/yakka/internal/errors"
)

// Strategy names a per-path merge policy (§4.1).
type Strategy string

const (
	StrategyDefault     Strategy = ""
	StrategyConcatenate Strategy = "concatenate"
	StrategyMax         Strategy = "max"
	StrategyMin         Strategy = "min"
	StrategySort        Strategy = "sort"
	StrategyUnique      Strategy = "unique"
	StrategyOverwrite   Strategy = "overwrite"
)

// StrategyTable maps a json-pointer-shaped path to its declared strategy,
// aggregated from every component's `schema`/`data_schema` fragment (C2's
// schema aggregation, §4 implementation notes).
type StrategyTable map[string]Strategy

// Lookup returns the declared strategy for path, or StrategyDefault if
// none was declared.
func (t StrategyTable) Lookup(path string) Strategy {
	if t == nil {
		return StrategyDefault
	}
	return t[path]
}

// Merge deep-merges src into dst at the given json-pointer path prefix,
// returning a new value — dst and src are never mutated in place, so a
// merge always produces fresh maps/slices for any path it touches
// (structural sharing: untouched subtrees are shared with dst).
//
// Rules (§4.1):
//   - object -> object: deep-merge by key, recurse.
//   - array -> array: append (or apply the path's declared strategy).
//   - scalar -> array: append scalar.
//   - scalar -> scalar: convert dst to a single-element array then
//     append (default), or apply the path's declared strategy.
//   - array -> object, object -> scalar, scalar -> object: error.
//   - nil src: no-op (returns dst unchanged).
func Merge(dst, src any, path string, strategies StrategyTable) (any, error) {
	if src == nil {
		return dst, nil
	}
	if dst == nil {
		return cloneValue(src), nil
	}

	switch s := src.(type) {
	case map[string]any:
		d, ok := dst.(map[string]any)
		if !ok {
			return nil, mergeTypeError(path, dst, src)
		}
		return mergeObjects(d, s, path, strategies)

	case []any:
		switch d := dst.(type) {
		case []any:
			return mergeArrays(d, s, path, strategies)
		case map[string]any:
			return nil, mergeTypeError(path, dst, src)
		default:
			// scalar -> array is not a declared rule; treat the existing
			// scalar as a single-element array and append, matching the
			// scalar->scalar default below.
			return mergeArrays([]any{d}, s, path, strategies)
		}

	default:
		// src is scalar.
		switch d := dst.(type) {
		case map[string]any:
			return nil, mergeTypeError(path, dst, src)
		case []any:
			return append(cloneSlice(d), src), nil
		default:
			return mergeScalars(d, src, path, strategies)
		}
	}
}

func mergeObjects(dst, src map[string]any, path string, strategies StrategyTable) (any, error) {
	result := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		result[k] = v
	}
	for k, v := range src {
		childPath := childPath(path, k)
		merged, err := Merge(result[k], v, childPath, strategies)
		if err != nil {
			return nil, err
		}
		result[k] = merged
	}
	return result, nil
}

func mergeArrays(dst, src []any, path string, strategies StrategyTable) (any, error) {
	switch strategies.Lookup(path) {
	case StrategyOverwrite:
		return cloneSlice(src), nil
	case StrategyUnique:
		return uniqueAppend(dst, src), nil
	case StrategySort:
		merged := uniqueAppend(dst, src)
		sortAny(merged)
		return merged, nil
	default:
		merged := make([]any, 0, len(dst)+len(src))
		merged = append(merged, dst...)
		merged = append(merged, src...)
		return merged, nil
	}
}

func mergeScalars(dst, src any, path string, strategies StrategyTable) (any, error) {
	switch strategies.Lookup(path) {
	case StrategyOverwrite:
		return src, nil
	case StrategyMax:
		return pickNumeric(dst, src, func(a, b float64) bool { return a > b })
	case StrategyMin:
		return pickNumeric(dst, src, func(a, b float64) bool { return a < b })
	default:
		// Default and "concatenate"/"sort"/"unique" on a scalar pair all
		// promote to an array and append — the table only changes
		// behaviour once a third value arrives and the path is already
		// an array (handled in mergeArrays).
		return []any{dst, src}, nil
	}
}

func pickNumeric(dst, src any, keep func(a, b float64) bool) (any, error) {
	a, aok := asFloat(dst)
	b, bok := asFloat(src)
	if !aok || !bok {
		return nil, oerrors.Wrap(oerrors.ErrDataDependency,
			fmt.Sprintf("max/min strategy requires numeric values, got %T and %T", dst, src))
	}
	if keep(a, b) {
		return dst, nil
	}
	return src, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func mergeTypeError(path string, dst, src any) error {
	return oerrors.Wrap(oerrors.ErrDataDependency,
		fmt.Sprintf("cannot merge %T into %T at %q", src, dst, path))
}

func childPath(parent, key string) string {
	if parent == "" {
		return "/" + key
	}
	return parent + "/" + key
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		return cloneSlice(t)
	default:
		return v
	}
}

func cloneSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = cloneValue(v)
	}
	return out
}

func uniqueAppend(dst, src []any) []any {
	seen := make(map[string]bool, len(dst)+len(src))
	out := make([]any, 0, len(dst)+len(src))
	for _, v := range dst {
		key := fmt.Sprintf("%v", v)
		if !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
	}
	for _, v := range src {
		key := fmt.Sprintf("%v", v)
		if !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}
