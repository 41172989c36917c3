package manifest

import (
	"strings"

	"gopkg.in/yaml.v3"

	oerrors "github.com/embedded-awesome/yakka/internal/errors"
)

// Parse decodes raw YAML bytes into a Manifest. id is used when the
// manifest has no explicit `id:` field (derived by the caller from the
// file's dotted name or registry path).
func Parse(data []byte, id, source string) (*Manifest, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, oerrors.NewInvalidComponentError(id, source, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return FromRaw(raw, id, source), nil
}

// FromRaw re-derives a Manifest's indexed fields from an already-decoded
// tree. Used both by Parse and by the resolver, which re-derives a
// component's fields after merging a `supports.*` fragment into its raw
// tree (§4.2 steps 1d/1e) — the fragment may itself add requires,
// provides, choices or blueprints.
func FromRaw(raw map[string]any, id, source string) *Manifest {
	m := &Manifest{
		ID:     id,
		Source: source,
		Raw:    raw,
	}
	if explicit, ok := raw["id"].(string); ok && explicit != "" {
		m.ID = explicit
	}

	m.Replaces, _ = lookupString(raw, "replaces", "component")

	requires, _ := raw["requires"].(map[string]any)
	m.RequiresComponents = append(m.RequiresComponents, stringListOrIDs(requires["components"])...)
	m.RequiresFeatures = append(m.RequiresFeatures, stringListOrNames(requires["features"])...)
	m.RequiresData = append(m.RequiresData, stringList(requires["data"])...)

	provides, _ := raw["provides"].(map[string]any)
	m.ProvidesFeatures = append(m.ProvidesFeatures, stringList(provides["features"])...)

	m.Choices = parseChoices(raw["choices"])
	m.Blueprints = parseBlueprints(raw["blueprints"])
	m.Tools = parseTools(raw["tools"])
	m.SLC = parseSLC(raw)

	return m
}

// IDFromPath derives a component id from a manifest's dotted file name,
// e.g. "toolchains.gcc-arm.yaml" -> "toolchains.gcc-arm".
func IDFromPath(path string) string {
	base := path
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	for _, ext := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return base
}

func lookupString(m map[string]any, path ...string) (string, bool) {
	cur := any(m)
	for _, key := range path {
		asMap, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = asMap[key]
		if !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}

// stringList coerces a YAML sequence of scalars into a string slice.
// Non-list or non-scalar entries are skipped.
func stringList(v any) []string {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// stringListOrIDs coerces `requires.components`: a sequence mixing bare
// id strings and `{id, instance}` objects, returning the id of each.
func stringListOrIDs(v any) []string {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if id, ok := t["id"].(string); ok {
				out = append(out, id)
			}
		}
	}
	return out
}

// stringListOrNames coerces `requires.features`: a sequence mixing bare
// name strings and `{name, recommends?, condition?, unless?}` objects.
func stringListOrNames(v any) []string {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case map[string]any:
			if name, ok := t["name"].(string); ok {
				out = append(out, name)
			}
		}
	}
	return out
}

func parseChoices(v any) map[string]Choice {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]Choice, len(m))
	for name, raw := range m {
		fields, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		c := Choice{}
		c.Description, _ = fields["description"].(string)
		c.Features = stringList(fields["features"])
		c.Components = stringList(fields["components"])
		c.Default, _ = fields["default"].(string)
		c.Exclusive, _ = fields["exclusive"].(bool)
		out[name] = c
	}
	return out
}

func parseBlueprints(v any) map[string]BlueprintDecl {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]BlueprintDecl, len(m))
	for pattern, raw := range m {
		fields, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		b := BlueprintDecl{Pattern: pattern}
		b.Regex, _ = fields["regex"].(bool)
		b.Group, _ = fields["group"].(string)
		b.Requirements = stringList(fields["requirements"])
		b.Depends = parseDependencies(fields["depends"])
		if process, ok := fields["process"].([]any); ok {
			for _, step := range process {
				if stepMap, ok := step.(map[string]any); ok {
					b.Process = append(b.Process, stepMap)
				}
			}
		}
		out[pattern] = b
	}
	return out
}

// parseDependencies coerces `blueprints.<t>.depends`: a sequence mixing
// bare templated-name strings and `{name, type}` objects.
func parseDependencies(v any) []DependencyDecl {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]DependencyDecl, 0, len(seq))
	for _, item := range seq {
		switch t := item.(type) {
		case string:
			out = append(out, DependencyDecl{Name: t})
		case map[string]any:
			name, _ := t["name"].(string)
			typ, _ := t["type"].(string)
			out = append(out, DependencyDecl{Name: name, Type: typ})
		}
	}
	return out
}

func parseTools(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for name, raw := range m {
		if s, ok := raw.(string); ok {
			out[name] = s
		}
	}
	return out
}

func parseSLC(raw map[string]any) *SLCDecl {
	instantiable, _ := raw["instantiable"].(map[string]any)
	prefix, hasPrefix := instantiable["prefix"].(string)
	instances := stringList(raw["instances"])
	recommends := stringList(raw["recommends"])
	configFiles := parseConfigFiles(raw["config_file"])
	contributions := parseTemplateContributions(raw["template_contribution"])
	templateFiles := stringList(raw["template_file"])
	toolchainSettings := parseToolchainSettings(raw["toolchain_settings"])
	componentPaths := stringList(raw["component_path"])

	if !hasPrefix && len(instances) == 0 && len(recommends) == 0 &&
		len(configFiles) == 0 && len(contributions) == 0 &&
		len(templateFiles) == 0 && len(toolchainSettings) == 0 &&
		len(componentPaths) == 0 {
		return nil
	}

	return &SLCDecl{
		InstancePrefix:         prefix,
		Instances:              instances,
		Recommends:             recommends,
		ConfigFiles:            configFiles,
		TemplateContributions:  contributions,
		TemplateFiles:          templateFiles,
		ToolchainSettings:      toolchainSettings,
		ComponentPaths:         componentPaths,
	}
}

func parseConfigFiles(v any) []ConfigFileDecl {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]ConfigFileDecl, 0, len(seq))
	for _, item := range seq {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		decl := ConfigFileDecl{}
		decl.FileID, _ = fields["file_id"].(string)
		decl.Source, _ = fields["source"].(string)
		decl.Filename, _ = fields["filename"].(string)
		decl.Condition = conditionList(fields["condition"])
		decl.Unless = conditionList(fields["unless"])
		decl.Instance, _ = fields["instance"].(string)
		if override, ok := fields["override"].(map[string]any); ok {
			decl.Override, _ = override["file_id"].(string)
		}
		out = append(out, decl)
	}
	return out
}

func parseTemplateContributions(v any) []TemplateContributionDecl {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]TemplateContributionDecl, 0, len(seq))
	for _, item := range seq {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		decl := TemplateContributionDecl{}
		decl.Name, _ = fields["name"].(string)
		decl.Priority = intField(fields["priority"])
		decl.Value = fields["value"]
		decl.Condition = conditionList(fields["condition"])
		decl.Unless = conditionList(fields["unless"])
		decl.Instance, _ = fields["instance"].(string)
		out = append(out, decl)
	}
	return out
}

func parseToolchainSettings(v any) []ToolchainSettingDecl {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]ToolchainSettingDecl, 0, len(seq))
	for _, item := range seq {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		decl := ToolchainSettingDecl{}
		decl.Option, _ = fields["option"].(string)
		decl.Value = fields["value"]
		decl.Condition = conditionList(fields["condition"])
		decl.Unless = conditionList(fields["unless"])
		out = append(out, decl)
	}
	return out
}

// conditionList coerces a `condition`/`unless` entry, written as either a
// single feature name or a sequence of names, into a string slice.
func conditionList(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		return stringList(t)
	default:
		return nil
	}
}

func intField(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	default:
		return 0
	}
}
