// Package registry manages the component registries a project consults
// (§6): per-registry YAML descriptors under `.yakka/registries/` and
// their git-backed working areas under `.yakka/repos/<component>/`.
package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	oerrors "github.com/embedded-awesome/yakka/internal/errors"
)

// Registry is one `.yakka/registries/<name>.yaml` descriptor.
type Registry struct {
	Name     string            `yaml:"name"`
	URL      string            `yaml:"url"`
	Provides RegistryProvides  `yaml:"provides"`
}

// RegistryProvides lists the component ids a registry claims to serve.
type RegistryProvides struct {
	Components []string `yaml:"components"`
}

// Store is the set of registries known to YAKKA_HOME, loaded from
// `.yakka/registries/*.yaml`.
type Store struct {
	dir        string
	byName     map[string]*Registry
	ownerOf    map[string]string // component id -> registry name
}

// LoadStore reads every registry descriptor under dir (typically
// `<YAKKA_HOME>/registries`).
func LoadStore(dir string) (*Store, error) {
	s := &Store{
		dir:     dir,
		byName:  map[string]*Registry{},
		ownerOf: map[string]string{},
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") && !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var reg Registry
		if err := yaml.Unmarshal(data, &reg); err != nil {
			return nil, oerrors.NewInvalidConfigError(
				err.Error(), filepath.Join(dir, entry.Name()), "",
				"check the YAML syntax of the registry descriptor",
			)
		}
		if reg.Name == "" {
			reg.Name = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		}
		s.add(&reg)
	}

	return s, nil
}

func (s *Store) add(reg *Registry) {
	s.byName[reg.Name] = reg
	for _, id := range reg.Provides.Components {
		s.ownerOf[id] = reg.Name
	}
}

// Get returns a registry by name.
func (s *Store) Get(name string) (*Registry, bool) {
	r, ok := s.byName[name]
	return r, ok
}

// OwnerOf returns the registry name that claims to provide a component
// id, or "" if none does.
func (s *Store) OwnerOf(id string) string {
	return s.ownerOf[id]
}

// All returns every registry, sorted by name.
func (s *Store) All() []*Registry {
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]*Registry, 0, len(names))
	for _, n := range names {
		out = append(out, s.byName[n])
	}
	return out
}

// Register adds or replaces a registry descriptor on disk and in the
// in-memory store.
func (s *Store) Register(reg *Registry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(reg)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, reg.Name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	s.add(reg)
	return nil
}

// Remove deletes a registry descriptor from disk and the in-memory store.
func (s *Store) Remove(name string) error {
	reg, ok := s.byName[name]
	if !ok {
		return oerrors.NewInvalidConfigError(
			"no such registry", "", name, "check the registry name with 'yakka list'",
		)
	}
	for _, id := range reg.Provides.Components {
		delete(s.ownerOf, id)
	}
	delete(s.byName, name)
	return os.Remove(filepath.Join(s.dir, name+".yaml"))
}

// RepoDir returns the git working area for a component under the given
// `.yakka` root (§6: `.yakka/repos/<component>/`).
func RepoDir(yakkaRoot, component string) string {
	return filepath.Join(yakkaRoot, "repos", component)
}
