// Package config provides configuration loading and management.
package config

import (
	"os"

	"github.com/embedded-awesome/yakka/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolveStringOptions contains options for a flag/env/config/default
// precedence resolution of a single string value.
type ResolveStringOptions struct {
	// FlagValue is the CLI flag value (empty if not set).
	FlagValue string
	// EnvVar is the environment variable name to check.
	EnvVar string
	// ConfigValue is the value from the global config file (empty if not set).
	ConfigValue string
	// Default is returned when no other source provides a value.
	Default string
}

// ResolveResult contains a resolved value and its source.
type ResolveResult struct {
	// Value is the resolved value.
	Value string
	// Source indicates where the value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveString resolves a single string configuration value using
// precedence: (1) flag, (2) environment variable, (3) config file, (4) default.
func ResolveString(opts ResolveStringOptions) ResolveResult {
	result := ResolveResult{Shadowed: make(map[ConfigSource]string)}

	var envValue string
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	switch {
	case opts.FlagValue != "":
		result.Value = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		if opts.ConfigValue != "" {
			result.Shadowed[SourceConfig] = opts.ConfigValue
		}
	case envValue != "":
		result.Value = envValue
		result.Source = SourceEnv
		if opts.ConfigValue != "" {
			result.Shadowed[SourceConfig] = opts.ConfigValue
		}
	case opts.ConfigValue != "":
		result.Value = opts.ConfigValue
		result.Source = SourceConfig
	default:
		result.Value = opts.Default
		result.Source = SourceDefault
	}

	return result
}

// ResolveRegistry resolves the default registry using precedence:
// (1) --registry flag, (2) YAKKA_REGISTRY env, (3) config.registry.
func ResolveRegistry(flagValue string, cfg *Config) ResolveResult {
	configValue := ""
	if cfg != nil {
		configValue = cfg.Registry
	}
	return ResolveString(ResolveStringOptions{
		FlagValue:   flagValue,
		EnvVar:      "YAKKA_REGISTRY",
		ConfigValue: configValue,
	})
}

// ResolveProjectName resolves the project name using precedence:
// (1) -p/--project-name flag, (2) YAKKA_PROJECT env, (3) config.project_name,
// (4) the working directory's base name, supplied by the caller as Default.
func ResolveProjectName(flagValue string, cfg *Config, cwdDefault string) ResolveResult {
	configValue := ""
	if cfg != nil {
		configValue = cfg.ProjectName
	}
	return ResolveString(ResolveStringOptions{
		FlagValue:   flagValue,
		EnvVar:      "YAKKA_PROJECT",
		ConfigValue: configValue,
		Default:     cwdDefault,
	})
}

// ResolveOutputDir resolves the output directory root using precedence:
// (1) -o consumes the flag for "suppress output" so there is no output-dir
// flag; (2) YAKKA_OUTPUT env, (3) config.output_dir, (4) "output".
func ResolveOutputDir(cfg *Config) ResolveResult {
	configValue := ""
	if cfg != nil {
		configValue = cfg.OutputDir
	}
	return ResolveString(ResolveStringOptions{
		EnvVar:      "YAKKA_OUTPUT",
		ConfigValue: configValue,
		Default:     "output",
	})
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the global config file path using precedence:
// (1) --config flag, (2) YAKKA_CONFIG env, (3) ~/.yakka/config.yaml default.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{Shadowed: make(map[ConfigSource]string)}

	envValue := os.Getenv("YAKKA_CONFIG")

	paths, err := PathsFromEnv()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level when verbose.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
