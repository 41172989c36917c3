// Package cmdutil provides shared command utilities for the yakka action
// commands: flag group registration and resolver/build error reporting.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// BuildFlags holds the flags governing a build invocation (§6): refresh,
// eval, output and fetch toggles, project name, SLC features, and raw
// data overrides.
type BuildFlags struct {
	Refresh     bool
	NoEval      bool
	IgnoreEval  bool
	NoOutput    bool
	Fetch       bool
	ProjectName string
	With        []string
	Data        []string
	NoSLCC      bool
	NoYakka     bool
}

// AddTo registers the build flags on the given cobra command.
func (f *BuildFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.Refresh, "refresh", "r", false,
		"Ignore the previous build's summary so every data dependency reads as changed (file targets still follow mtime freshness)")
	cmd.Flags().BoolVarP(&f.NoEval, "no-eval", "n", false,
		"Accepted but not read by the build; conditions are always evaluated")
	cmd.Flags().BoolVarP(&f.IgnoreEval, "ignore-eval", "i", false,
		"Accepted but not read by the build; conditions are always evaluated")
	cmd.Flags().BoolVarP(&f.NoOutput, "no-output", "o", false,
		"Suppress writing build artifacts to the output directory")
	cmd.Flags().BoolVarP(&f.Fetch, "fetch", "f", false,
		"Fetch/update component registries before resolving")
	cmd.Flags().StringVarP(&f.ProjectName, "project-name", "p", "",
		"Project name (default: resolved from config or working directory)")
	cmd.Flags().StringArrayVarP(&f.With, "with", "w", nil,
		"Additional SLC feature to require (can be repeated)")
	cmd.Flags().StringArrayVarP(&f.Data, "data", "d", nil,
		"Data override as a YAML fragment or dotted a.b.c=value (can be repeated)")
	cmd.Flags().BoolVar(&f.NoSLCC, "no-slcc", false,
		"Accepted but not read by the build; SLC post-processing always runs")
	cmd.Flags().BoolVar(&f.NoYakka, "no-yakka", false,
		"Skip loading the project's <project>.yakka override file")
}

// RegistryFlags holds a registry-selection flag. No command registers
// it; the root command declares its own persistent --registry flag.
type RegistryFlags struct {
	Registry string
}

// AddTo registers the registry flag on the given cobra command.
func (f *RegistryFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Registry, "registry", "",
		"Registry to operate on (default: from config)")
}
