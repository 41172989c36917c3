// Package summary assembles the project summary (§3, §4.3): the single
// merged document that the templating engine, blueprint matcher and task
// engine read component and configuration data from.
package summary

// Summary is the project summary (§3): the fields named verbatim in the
// spec, serialised as both JSON and YAML twins (§6's bob_summary.json /
// bob_summary.yaml).
type Summary struct {
	ProjectName   string         `json:"project_name" yaml:"project_name"`
	ProjectOutput string         `json:"project_output" yaml:"project_output"`
	Configuration map[string]any `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Tools         map[string]string `json:"tools,omitempty" yaml:"tools,omitempty"`
	Components    map[string]any `json:"components" yaml:"components"`
	Features      []string       `json:"features" yaml:"features"`
	Initial       InitialRequest `json:"initial" yaml:"initial"`
	Data          map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
	Host          HostInfo       `json:"host" yaml:"host"`
	Choices       map[string]string `json:"choices,omitempty" yaml:"choices,omitempty"`

	ToolchainSettings      map[string]any    `json:"toolchain_settings,omitempty" yaml:"toolchain_settings,omitempty"`
	TemplateContributions  map[string][]any  `json:"template_contributions,omitempty" yaml:"template_contributions,omitempty"`

	// GeneratedConfigFiles holds the config_file entries expanded into
	// concrete (source, destination) pairs after override resolution
	// (§4.3); the blueprint matcher turns each into a generated blueprint.
	GeneratedConfigFiles []GeneratedConfigFile `json:"-" yaml:"-"`
}

// InitialRequest records the literal command-line request (§3's
// `initial.{components,features}`), before closure.
type InitialRequest struct {
	Components []string `json:"components" yaml:"components"`
	Features   []string `json:"features" yaml:"features"`
}

// HostInfo is the minimal build-host fingerprint the summary exposes to
// templates (`host.os`, `host.arch`).
type HostInfo struct {
	OS   string `json:"os" yaml:"os"`
	Arch string `json:"arch" yaml:"arch"`
}

// GeneratedConfigFile is one SLC `config_file[]` entry after instance
// expansion and override resolution (§4.3).
type GeneratedConfigFile struct {
	FileID      string
	Source      string
	Destination string
	OwnerID     string // component id that ultimately supplies the content
	Instance    string
}
