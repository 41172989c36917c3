package merge

import (
	"fmt"
	"sort"
)

// sortAny sorts a slice of merged scalars in place, falling back to
// their string representation when the elements aren't homogeneously
// numeric — the "sort" strategy (§4.1) never fails merge, it only
// orders the result deterministically.
func sortAny(values []any) {
	if allNumeric(values) {
		sort.Slice(values, func(i, j int) bool {
			a, _ := asFloat(values[i])
			b, _ := asFloat(values[j])
			return a < b
		})
		return
	}
	sort.Slice(values, func(i, j int) bool {
		return fmt.Sprintf("%v", values[i]) < fmt.Sprintf("%v", values[j])
	})
}

func allNumeric(values []any) bool {
	for _, v := range values {
		if _, ok := asFloat(v); !ok {
			return false
		}
	}
	return true
}

// BuildStrategyTable aggregates every component's `schema`/`data_schema`
// fragment into one path->strategy table (§4 implementation notes: a
// plain merge of path->strategy maps under the default last-wins rule,
// since schema fragments themselves don't declare a strategy for their
// own merge).
func BuildStrategyTable(fragments ...map[string]any) StrategyTable {
	table := make(StrategyTable)
	for _, fragment := range fragments {
		flattenStrategy(fragment, "", table)
	}
	return table
}

func flattenStrategy(node map[string]any, prefix string, table StrategyTable) {
	for key, value := range node {
		path := childPath(prefix, key)
		switch v := value.(type) {
		case string:
			table[path] = Strategy(v)
		case map[string]any:
			if strategy, ok := v["strategy"].(string); ok {
				table[path] = Strategy(strategy)
			}
			flattenStrategy(v, path, table)
		}
	}
}
