// Package config provides configuration loading and management.
package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for the CLI.
type Paths struct {
	// ConfigFile is the path to the global config file (~/.yakka/config.yaml).
	ConfigFile string

	// CacheDir is the path to the cache directory (~/.yakka/cache).
	CacheDir string

	// HomeDir is the shared components/database directory (YAKKA_HOME, ~/.yakka by default).
	HomeDir string
}

// DefaultPaths returns the default paths, expanding ~ to the user's home directory.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	yakkaHome := filepath.Join(homeDir, ".yakka")
	return &Paths{
		ConfigFile: filepath.Join(yakkaHome, "config.yaml"),
		CacheDir:   filepath.Join(yakkaHome, "cache"),
		HomeDir:    yakkaHome,
	}, nil
}

// PathsFromEnv returns paths considering environment overrides.
func PathsFromEnv() (*Paths, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}

	// YAKKA_HOME overrides the shared components/database directory and,
	// transitively, the config file and cache dir that live under it.
	if home := os.Getenv("YAKKA_HOME"); home != "" {
		paths.HomeDir = home
		paths.ConfigFile = filepath.Join(home, "config.yaml")
		paths.CacheDir = filepath.Join(home, "cache")
	}

	if configPath := os.Getenv("YAKKA_CONFIG"); configPath != "" {
		paths.ConfigFile = configPath
	}

	if cacheDir := os.Getenv("YAKKA_CACHE_DIR"); cacheDir != "" {
		paths.CacheDir = cacheDir
	}

	return paths, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// EnsureDir ensures a directory exists with the given permissions.
func EnsureDir(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
