package summary

import (
	"runtime"
	"sort"

	"github.com/embedded-awesome/yakka/internal/manifest"
	"github.com/embedded-awesome/yakka/internal/merge"
	"github.com/embedded-awesome/yakka/internal/resolver"
)

// Options configures Build beyond what the resolver result itself
// carries.
type Options struct {
	ProjectName string
	OutputDir   string
	Data        []map[string]any // parsed -d/--data fragments, applied last
}

// Build assembles the project summary from a valid resolver result
// (§4.3): folding every required component's manifest into
// `components.<id>`, aggregating `tools`/`data`/`toolchain_settings`
// across components, and running the SLC post-processing pass.
func Build(result *resolver.Result, strategies merge.StrategyTable, opts Options) (*Summary, error) {
	s := &Summary{
		ProjectName:   opts.ProjectName,
		ProjectOutput: opts.OutputDir,
		Components:    map[string]any{},
		Tools:         map[string]string{},
		Data:          map[string]any{},
		Host:          HostInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
		Choices:       map[string]string{},
	}

	ids := make([]string, 0, len(result.Manifests))
	for id := range result.Manifests {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		m := result.Manifests[id]
		s.Components[id] = m.Raw

		for name, tmpl := range m.Tools {
			s.Tools[name] = tmpl
		}

		if data, ok := m.Raw["data"].(map[string]any); ok {
			merged, err := merge.Merge(s.Data, data, "/data", strategies)
			if err != nil {
				return nil, err
			}
			s.Data = merged.(map[string]any)
		}
		if config, ok := m.Raw["configuration"].(map[string]any); ok {
			if s.Configuration == nil {
				s.Configuration = map[string]any{}
			}
			merged, err := merge.Merge(s.Configuration, config, "/configuration", strategies)
			if err != nil {
				return nil, err
			}
			s.Configuration = merged.(map[string]any)
		}
	}

	for _, fragment := range opts.Data {
		merged, err := merge.Merge(s.Data, fragment, "/data", strategies)
		if err != nil {
			return nil, err
		}
		s.Data = merged.(map[string]any)
	}

	s.Features = sortedKeys(result.RequiredFeatures)
	s.Initial = InitialRequest{
		Components: keysOf(result.RequiredComponents),
		Features:   s.Features,
	}

	resolveChoices(s, result)

	if err := applySLC(s, result, ids, strategies); err != nil {
		return nil, err
	}

	return s, nil
}

func resolveChoices(s *Summary, result *resolver.Result) {
	names := make([]string, 0, len(result.Choices))
	for name := range result.Choices {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		choice := result.Choices[name]
		for _, f := range choice.Features {
			if result.RequiredFeatures[f] {
				s.Choices[name] = f
				break
			}
		}
		if _, ok := s.Choices[name]; ok {
			continue
		}
		for _, c := range choice.Components {
			if result.RequiredComponents[c] {
				s.Choices[name] = c
				break
			}
		}
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func keysOf(m map[string]bool) []string {
	return sortedKeys(m)
}
