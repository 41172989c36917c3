package summary

import (
	"sort"
	"strings"

	"github.com/embedded-awesome/yakka/internal/manifest"
	"github.com/embedded-awesome/yakka/internal/merge"
	"github.com/embedded-awesome/yakka/internal/resolver"
)

type contribution struct {
	priority int
	value    any
}

// applySLC runs the §4.3 SLC post-processing pass over every required
// component's SLC declarations: instance expansion, config_file override
// resolution, template_contribution bucketing/sorting and
// toolchain_settings aggregation.
func applySLC(s *Summary, result *resolver.Result, ids []string, strategies merge.StrategyTable) error {
	rf := result.RequiredFeatures

	type expandedConfigFile struct {
		decl   manifest.ConfigFileDecl
		owner  string
		source string
	}

	var configFiles []expandedConfigFile
	contributions := map[string][]contribution{}
	settings := map[string]any{}

	for _, id := range ids {
		m := result.Manifests[id]
		if m.SLC == nil {
			continue
		}

		instances := m.SLC.Instances
		if len(instances) == 0 {
			instances = []string{""}
		}

		for _, inst := range instances {
			for _, cf := range m.SLC.ConfigFiles {
				if cf.Instance != "" && cf.Instance != inst {
					continue
				}
				if !resolver.ConditionSatisfied(cf.Condition, cf.Unless, rf) {
					continue
				}
				configFiles = append(configFiles, expandedConfigFile{
					decl:   expandInstance(cf, inst),
					owner:  id,
					source: expandPlaceholders(cf.Source, inst),
				})
			}

			for _, tc := range m.SLC.TemplateContributions {
				if tc.Instance != "" && tc.Instance != inst {
					continue
				}
				if !resolver.ConditionSatisfied(tc.Condition, tc.Unless, rf) {
					continue
				}
				contributions[tc.Name] = append(contributions[tc.Name], contribution{
					priority: tc.Priority,
					value:    expandValue(tc.Value, inst),
				})
			}

			for _, ts := range m.SLC.ToolchainSettings {
				if !resolver.ConditionSatisfied(ts.Condition, ts.Unless, rf) {
					continue
				}
				merged, err := mergeSetting(settings[ts.Option], expandValue(ts.Value, inst))
				if err != nil {
					return err
				}
				settings[ts.Option] = merged
			}
		}
	}

	// config_file override resolution: a later declaration's
	// `override.file_id` replaces an earlier entry sharing that file_id.
	byFileID := map[string]int{}
	var resolvedFiles []GeneratedConfigFile
	for _, cf := range configFiles {
		entry := GeneratedConfigFile{
			FileID:      cf.decl.FileID,
			Source:      cf.source,
			Destination: cf.decl.Filename,
			OwnerID:     cf.owner,
			Instance:    cf.decl.Instance,
		}
		if idx, ok := byFileID[cf.decl.FileID]; ok && cf.decl.FileID != "" {
			resolvedFiles[idx] = entry
			continue
		}
		if cf.decl.Override != "" {
			if idx, ok := byFileID[cf.decl.Override]; ok {
				resolvedFiles[idx] = entry
				byFileID[cf.decl.FileID] = idx
				continue
			}
		}
		resolvedFiles = append(resolvedFiles, entry)
		if cf.decl.FileID != "" {
			byFileID[cf.decl.FileID] = len(resolvedFiles) - 1
		}
	}
	s.GeneratedConfigFiles = resolvedFiles

	if len(contributions) > 0 {
		s.TemplateContributions = map[string][]any{}
		for name, list := range contributions {
			sort.SliceStable(list, func(i, j int) bool { return list[i].priority < list[j].priority })
			values := make([]any, len(list))
			for i, c := range list {
				values[i] = c.value
			}
			s.TemplateContributions[name] = values
		}
	}

	if len(settings) > 0 {
		s.ToolchainSettings = settings
	}

	return nil
}

func expandInstance(cf manifest.ConfigFileDecl, instance string) manifest.ConfigFileDecl {
	cf.FileID = expandPlaceholders(cf.FileID, instance)
	cf.Filename = expandPlaceholders(cf.Filename, instance)
	cf.Instance = instance
	return cf
}

func expandValue(v any, instance string) any {
	if s, ok := v.(string); ok {
		return expandPlaceholders(s, instance)
	}
	return v
}

// expandPlaceholders substitutes the `{{instance}}` placeholder used by
// SLC string fields. Full template rendering (with the blueprint
// matcher's richer callback set) happens later, in internal/templating;
// this is the narrow "instance := iₖ" substitution §4.3 names explicitly.
func expandPlaceholders(s, instance string) string {
	if instance == "" {
		return s
	}
	return strings.ReplaceAll(s, "{{instance}}", instance)
}

// mergeSetting aggregates a toolchain_settings option by name: a scalar
// conflict promotes both values into an array (§4.3).
func mergeSetting(existing, value any) (any, error) {
	if existing == nil {
		return value, nil
	}
	switch e := existing.(type) {
	case []any:
		return append(e, value), nil
	default:
		return []any{existing, value}, nil
	}
}
