// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	oerrors "github.com/embedded-awesome/yakka/internal/errors"
	"github.com/embedded-awesome/yakka/internal/output"
)

// LoaderOptions contains options for loading configuration.
type LoaderOptions struct {
	// RegistryFlag is the --registry flag value.
	RegistryFlag string
	// ConfigFlag is the --config flag value.
	ConfigFlag string
	// ProjectNameFlag is the -p/--project-name flag value.
	ProjectNameFlag string
}

// LoadConfig reads the global config file (if present) via viper, applying
// YAKKA_ environment variable binding, and returns the typed Config.
//
// viper is used here for its environment-binding and file-format-sniffing
// convenience even though the config surface is small; it also backs the
// config server's future settings without a second loading path.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("YAKKA")
	v.AutomaticEnv()

	v.SetDefault("output_dir", "output")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, oerrors.NewInvalidConfigError(
					err.Error(), configPath, "",
					"check the YAML syntax of the global config file",
				)
			}
		} else {
			output.Debug("global config file not found, using defaults", "path", configPath)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, oerrors.NewInvalidConfigError(
			err.Error(), configPath, "",
			"check that every field in the global config file has the expected type",
		)
	}

	return cfg, nil
}

// LoadYakkaConfig resolves the global config file and the flag/env/config
// precedence chain (registry, project name, output dir) into one
// YakkaConfig for the current invocation.
func LoadYakkaConfig(opts LoaderOptions, run RunOptions) (*YakkaConfig, error) {
	configPathResult, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: opts.ConfigFlag})
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	output.Debug("resolved config path", "path", configPathResult.ConfigPath, "source", configPathResult.Source)

	cfg, err := LoadConfig(configPathResult.ConfigPath)
	if err != nil {
		return nil, err
	}

	registryResult := ResolveRegistry(opts.RegistryFlag, cfg)
	output.Debug("resolved registry", "registry", registryResult.Value, "source", registryResult.Source)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	projectResult := ResolveProjectName(opts.ProjectNameFlag, cfg, filepath.Base(cwd))
	output.Debug("resolved project name", "project", projectResult.Value, "source", projectResult.Source)

	outputResult := ResolveOutputDir(cfg)
	output.Debug("resolved output dir", "output", outputResult.Value, "source", outputResult.Source)

	return &YakkaConfig{
		Config:            cfg,
		Registry:          registryResult.Value,
		RegistrySource:    string(registryResult.Source),
		ProjectName:       projectResult.Value,
		ProjectNameSource: string(projectResult.Source),
		OutputDir:         outputResult.Value,
		Run:               run,
	}, nil
}

// LoadProjectOverrides reads a `<project>.yakka` data-override file (§6) and
// returns its contents as a raw YAML tree ready to be merged into the
// project summary's data subtree by internal/merge.
func LoadProjectOverrides(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading project override file %s: %w", path, err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, oerrors.NewInvalidConfigError(
			err.Error(), path, "",
			"check the YAML syntax of the project override file",
		)
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

// ParseDataFragment parses a single -d/--data value. Accepts either a bare
// "key: value" YAML fragment or a dotted "a.b.c=value" shorthand, returning
// the fragment as a one-branch tree ready for merging.
func ParseDataFragment(fragment string) (map[string]any, error) {
	var tree map[string]any
	if err := yaml.Unmarshal([]byte(fragment), &tree); err == nil && tree != nil {
		return tree, nil
	}

	// Fall back to dotted-path shorthand: a.b.c=value
	key, value, ok := splitDottedAssignment(fragment)
	if !ok {
		return nil, oerrors.NewInvalidConfigError(
			fmt.Sprintf("malformed -d/--data fragment %q", fragment), "", "data",
			"use either a YAML mapping (key: value) or dotted shorthand (a.b.c=value)",
		)
	}
	return buildDottedTree(key, value), nil
}

func splitDottedAssignment(fragment string) (key, value string, ok bool) {
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '=' {
			return fragment[:i], fragment[i+1:], true
		}
	}
	return "", "", false
}

func buildDottedTree(dottedKey, value string) map[string]any {
	parts := splitDotted(dottedKey)
	root := map[string]any{}
	node := root
	for i, part := range parts {
		if i == len(parts)-1 {
			node[part] = value
			break
		}
		child := map[string]any{}
		node[part] = child
		node = child
	}
	return root
}

func splitDotted(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
