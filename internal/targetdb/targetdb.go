// Package targetdb implements the target database (C6, §4.5): a
// breadth-first closure over target dependencies, memoising each
// target's blueprint matches.
package targetdb

import (
	"sort"

	"github.com/embedded-awesome/yakka/internal/blueprint"
	"github.com/embedded-awesome/yakka/internal/manifest"
	"github.com/embedded-awesome/yakka/internal/templating"
)

// DB is the memoised target -> matches map of §4.5.
type DB struct {
	matches   map[string][]blueprint.Match
	manifests map[string]*manifest.Manifest
}

// LoadComponent is consulted when a blueprint match declares
// `requirements: [t...]` (§4.5): a requirement not already known as a
// component is loaded on demand, its blueprints and tools becoming
// visible to subsequent matches in the same closure.
type LoadComponent func(id string) (*manifest.Manifest, bool)

// Build runs the BFS closure starting from the command targets,
// computing blueprint matches (§4.4) for each newly discovered target
// and following its dependencies, except data dependencies: those are
// recorded as a (leaf) entry but never expanded (§4.5).
func Build(commands []string, manifests map[string]*manifest.Manifest, renderer *templating.Renderer, ctx templating.Context, load LoadComponent) (*DB, error) {
	// Work on a local copy so requirement-driven component loading never
	// mutates the caller's manifest set.
	local := make(map[string]*manifest.Manifest, len(manifests))
	for id, m := range manifests {
		local[id] = m
	}

	db := &DB{
		matches:   map[string][]blueprint.Match{},
		manifests: local,
	}

	queue := append([]string{}, commands...)
	visited := map[string]bool{}

	for len(queue) > 0 {
		target := queue[0]
		queue = queue[1:]
		if visited[target] {
			continue
		}
		visited[target] = true

		matches, err := blueprint.MatchTarget(target, local)
		if err != nil {
			return nil, err
		}

		for i, m := range matches {
			resolved, err := blueprint.ResolveDependencies(m, renderer, ctx)
			if err != nil {
				return nil, err
			}
			matches[i] = resolved

			for _, req := range resolved.Requirements {
				if _, known := local[req]; known || load == nil {
					continue
				}
				if m, ok := load(req); ok {
					local[req] = m
				}
			}
		}

		db.matches[target] = matches

		for _, m := range matches {
			for _, dep := range m.Dependencies {
				if dep.Type == blueprint.TypeData {
					if _, ok := db.matches[dep.Name]; !ok {
						db.matches[dep.Name] = nil
					}
					continue
				}
				if !visited[dep.Name] {
					queue = append(queue, dep.Name)
				}
			}
		}
	}

	return db, nil
}

// Matches returns the memoised blueprint matches for a target, or nil if
// the target was never discovered by the closure.
func (db *DB) Matches(target string) []blueprint.Match {
	return db.matches[target]
}

// Targets returns every known target, sorted for deterministic iteration.
func (db *DB) Targets() []string {
	out := make([]string, 0, len(db.matches))
	for t := range db.matches {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of known targets.
func (db *DB) Len() int {
	return len(db.matches)
}
