// Package project ties the resolver, summary builder, blueprint matcher,
// target database, task engine and command dispatcher together into one
// build invocation (§2's pipeline, §6's CLI-facing build action).
package project

import (
	"os"
	"path/filepath"

	"github.com/embedded-awesome/yakka/internal/manifest"
	"github.com/embedded-awesome/yakka/internal/registry"
)

// ComponentsDirName is the project-local directory searched for
// manifests before falling back to a registry's cloned working area.
const ComponentsDirName = "components"

// LoadStore builds a manifest store from a project's local components
// directory; a missing directory yields an empty store. Registry-backed
// components are loaded lazily by RegistryLoader.Load as the
// resolver/target-database discover references to ids not already
// present locally.
func LoadStore(projectDir string) (*manifest.Store, error) {
	store := manifest.NewStore()
	dir := filepath.Join(projectDir, ComponentsDirName)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return store, nil
	}
	if err := store.LoadDir(dir); err != nil {
		return nil, err
	}
	return store, nil
}

// RegistryLoader resolves a component id against the registry store,
// cloning its git working area under yakkaHome/repos/<id> on first use
// and parsing every manifest found there into the given store.
type RegistryLoader struct {
	Registries *registry.Store
	YakkaHome  string
	Store      *manifest.Store
}

// Load implements targetdb.LoadComponent and the resolver's unknown-
// component fallback: clone (or reuse) the owning registry's repo for
// id, load its manifests, and return id's own manifest if now present.
func (l *RegistryLoader) Load(id string) (*manifest.Manifest, bool) {
	if m, ok := l.Store.Get(id); ok {
		return m, true
	}
	if l.Registries == nil {
		return nil, false
	}

	owner := l.Registries.OwnerOf(id)
	if owner == "" {
		return nil, false
	}
	reg, ok := l.Registries.Get(owner)
	if !ok {
		return nil, false
	}

	dir := registry.RepoDir(l.YakkaHome, id)
	if err := registry.Clone(reg.URL, dir); err != nil {
		return nil, false
	}
	if err := l.Store.LoadDir(dir); err != nil {
		return nil, false
	}

	return l.Store.Get(id)
}
