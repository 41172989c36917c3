package main

import (
	"path/filepath"

	"github.com/embedded-awesome/yakka/internal/config"
	"github.com/embedded-awesome/yakka/internal/registry"
)

// registriesDir returns the `.yakka/registries` directory under
// YAKKA_HOME (§6), the set of registry descriptors `yakka register`
// writes to and `yakka list`/build read from.
func registriesDir() (string, error) {
	paths, err := config.PathsFromEnv()
	if err != nil {
		return "", err
	}
	return filepath.Join(paths.HomeDir, "registries"), nil
}

// loadRegistries loads the registry store for the current YAKKA_HOME.
func loadRegistries() (*registry.Store, string, error) {
	dir, err := registriesDir()
	if err != nil {
		return nil, "", err
	}
	store, err := registry.LoadStore(dir)
	return store, dir, err
}

// yakkaHome returns the YAKKA_HOME root (registries + repos live under it).
func yakkaHome() (string, error) {
	paths, err := config.PathsFromEnv()
	if err != nil {
		return "", err
	}
	return paths.HomeDir, nil
}
