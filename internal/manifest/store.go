package manifest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	oerrors "github.com/embedded-awesome/yakka/internal/errors"
)

// Store holds every manifest known to a resolver run, indexed for the
// lookups the resolver and blueprint matcher need: by component id, by
// provided feature, and by blueprint pattern owner.
//
// Manifests are parsed once (§4 design note) and the Store is the single
// owner of each *Manifest afterward; later phases read through it rather
// than re-parsing or copying.
type Store struct {
	byID             map[string]*Manifest
	providersOf      map[string][]string // feature name -> component ids providing it
	blueprintOwners  map[string][]string // blueprint pattern -> component ids declaring it
}

// NewStore creates an empty manifest store.
func NewStore() *Store {
	return &Store{
		byID:            make(map[string]*Manifest),
		providersOf:     make(map[string][]string),
		blueprintOwners: make(map[string][]string),
	}
}

// Add registers a parsed manifest. A second manifest with the same id
// replaces the first (the last loader to add an id wins; registry/
// directory precedence is the caller's responsibility).
func (s *Store) Add(m *Manifest) {
	s.byID[m.ID] = m

	for _, feature := range m.ProvidesFeatures {
		s.providersOf[feature] = appendUnique(s.providersOf[feature], m.ID)
	}
	for pattern := range m.Blueprints {
		s.blueprintOwners[pattern] = appendUnique(s.blueprintOwners[pattern], m.ID)
	}
}

// Get returns the manifest for a component id.
func (s *Store) Get(id string) (*Manifest, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// MustGet returns the manifest for a component id or an
// unknown-component error.
func (s *Store) MustGet(id string) (*Manifest, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, oerrors.NewUnknownComponentError(id)
	}
	return m, nil
}

// ProvidersOf returns the component ids that unconditionally provide a
// feature, in insertion order.
func (s *Store) ProvidersOf(feature string) []string {
	return s.providersOf[feature]
}

// All returns every known manifest, sorted by id for deterministic
// iteration (§8: blueprint-matcher determinism depends on stable
// iteration order upstream of it).
func (s *Store) All() []*Manifest {
	out := make([]*Manifest, 0, len(s.byID))
	for _, m := range s.byID {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDir walks a directory tree of `*.yaml`/`*.yml` manifests and adds
// each to the store, deriving ids from the dotted file name when the
// manifest has no explicit `id:` field.
func (s *Store) LoadDir(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		id := IDFromPath(rel)

		m, err := Parse(data, id, path)
		if err != nil {
			return err
		}
		s.Add(m)
		return nil
	})
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
