// Package manifest parses and stores component manifests (§3): the
// declarative YAML documents that describe requirements, provided
// features, choices, replacements, blueprints, tools and schema
// fragments for a single component.
package manifest

// Manifest is one component's parsed manifest, decoded into a generic
// tree alongside a handful of fields the resolver and summary builder
// read directly. The raw tree is retained so C2's merger can fold
// arbitrary, unanticipated fragments (supports.*, schema, data_schema,
// SLC fields) into the project summary without this package needing to
// know every possible key.
type Manifest struct {
	// ID is the component id, either declared explicitly (`id:`) or
	// derived from the manifest's file path / dotted name.
	ID string

	// Source identifies where this manifest came from (file path or
	// "registry#id" reference), used in error messages.
	Source string

	// Raw is the full decoded YAML tree (map[string]any), the
	// authoritative representation consulted by every later phase.
	Raw map[string]any

	// RequiresComponents lists component ids (or {id, instance} objects,
	// kept in Raw) this component transitively requires.
	RequiresComponents []string

	// RequiresFeatures lists feature names this component requires.
	// Entries with condition/unless are kept in Raw under
	// requires.features and re-read by the resolver; this slice is the
	// flattened name list for quick membership checks.
	RequiresFeatures []string

	// RequiresData lists json-pointer-shaped data paths that must exist
	// in the merged summary.
	RequiresData []string

	// ProvidesFeatures lists feature names this component provides
	// unconditionally.
	ProvidesFeatures []string

	// Replaces is the component id this manifest shadows, or "".
	Replaces string

	// Choices maps choice name to its declaration.
	Choices map[string]Choice

	// Blueprints maps a target pattern (literal or regex) to its rule.
	Blueprints map[string]BlueprintDecl

	// Tools maps tool name to its template string.
	Tools map[string]string

	// SLC holds the SLC-specific fields (§4.3), nil for non-SLC manifests.
	SLC *SLCDecl
}

// Choice is a named selection among alternative features or components
// (§3): `choices.<name>: {description, features?|components?, default?, exclusive?}`.
type Choice struct {
	Description string
	Features    []string
	Components  []string
	Default     string
	Exclusive   bool
}

// BlueprintDecl is one `blueprints.<target-or-regex>` rule (§4.4).
type BlueprintDecl struct {
	// Pattern is the target key as written: a literal target name or a
	// regex pattern when Regex is true.
	Pattern string
	Regex   bool
	Group   string
	// Requirements lists additional targets to load as tool-providing
	// components when this blueprint matches (§4.5).
	Requirements []string
	Depends      []DependencyDecl
	Process      []map[string]any
}

// DependencyDecl is one `depends[]` entry: a templated dependency name
// plus its dispatch type (§4.4). Type may be declared explicitly
// (`{name, type: file|data}`); when omitted it is inferred at render
// time from the rendered text (a leading data-dependency prefix means
// DATA, otherwise DEFAULT).
type DependencyDecl struct {
	Name string
	Type string // "file", "data", "default", or "" to infer
}

// SLCDecl holds the alternate-component-flavour fields of §4.3.
type SLCDecl struct {
	InstancePrefix      string
	Instances           []string
	Recommends          []string
	ConfigFiles         []ConfigFileDecl
	TemplateContributions []TemplateContributionDecl
	TemplateFiles       []string
	ToolchainSettings   []ToolchainSettingDecl
	ComponentPaths      []string
}

// ConfigFileDecl is one `config_file[]` entry (§4.3).
type ConfigFileDecl struct {
	FileID    string
	Source    string
	Filename  string
	Override  string // override.file_id this entry supplies, if any
	Condition []string
	Unless    []string
	Instance  string
}

// TemplateContributionDecl is one `template_contribution[]` entry.
type TemplateContributionDecl struct {
	Name      string
	Priority  int
	Value     any
	Condition []string
	Unless    []string
	Instance  string
}

// ToolchainSettingDecl is one `toolchain_settings[]` entry.
type ToolchainSettingDecl struct {
	Option    string
	Value     any
	Condition []string
	Unless    []string
}
