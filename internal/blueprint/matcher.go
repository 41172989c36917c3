package blueprint

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/embedded-awesome/yakka/internal/manifest"
)

// MatchTarget returns every blueprint across the given manifests whose
// pattern matches target (§4.4 step 1). Regex patterns are matched
// full-string (anchored both ends, per the Open Question decision
// recorded in DESIGN.md); literal patterns match by equality.
//
// Iteration is over manifests sorted by component id, then over each
// manifest's blueprint patterns sorted lexically, so the returned slice
// is deterministic across runs for the same input (§8's blueprint
// matcher determinism property).
func MatchTarget(target string, manifests map[string]*manifest.Manifest) ([]Match, error) {
	ids := make([]string, 0, len(manifests))
	for id := range manifests {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var matches []Match
	for _, id := range ids {
		m := manifests[id]
		patterns := make([]string, 0, len(m.Blueprints))
		for pattern := range m.Blueprints {
			patterns = append(patterns, pattern)
		}
		sort.Strings(patterns)

		for _, pattern := range patterns {
			decl := m.Blueprints[pattern]
			if decl.Regex {
				re, err := regexp.Compile("^(?:" + pattern + ")$")
				if err != nil {
					return nil, fmt.Errorf("blueprint %q on %s: invalid regex: %w", pattern, id, err)
				}
				groups := re.FindStringSubmatch(target)
				if groups == nil {
					continue
				}
				match := declToMatch(id, decl, groups)
				match.ParentPath = filepath.Dir(m.Source)
				matches = append(matches, match)
				continue
			}

			if pattern != target {
				continue
			}
			match := declToMatch(id, decl, nil)
			match.ParentPath = filepath.Dir(m.Source)
			matches = append(matches, match)
		}
	}

	return matches, nil
}
