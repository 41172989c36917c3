package manifest

// SupportsFeature returns the conditional `supports.features.<f>`
// fragment declared on this manifest, if any (§3, §4.2 step 1d).
func (m *Manifest) SupportsFeature(f string) (map[string]any, bool) {
	return m.supportsFragment("features", f)
}

// SupportsComponent returns the conditional `supports.components.<c>`
// fragment declared on this manifest, if any (§4.2 step 1e).
func (m *Manifest) SupportsComponent(c string) (map[string]any, bool) {
	return m.supportsFragment("components", c)
}

func (m *Manifest) supportsFragment(section, key string) (map[string]any, bool) {
	supports, ok := m.Raw["supports"].(map[string]any)
	if !ok {
		return nil, false
	}
	group, ok := supports[section].(map[string]any)
	if !ok {
		return nil, false
	}
	fragment, ok := group[key].(map[string]any)
	return fragment, ok
}

// SupportedFeatureKeys lists the feature names this manifest has a
// `supports.features.<f>` fragment for.
func (m *Manifest) SupportedFeatureKeys() []string {
	return m.supportsKeys("features")
}

// SupportedComponentKeys lists the component ids this manifest has a
// `supports.components.<c>` fragment for.
func (m *Manifest) SupportedComponentKeys() []string {
	return m.supportsKeys("components")
}

func (m *Manifest) supportsKeys(section string) []string {
	supports, ok := m.Raw["supports"].(map[string]any)
	if !ok {
		return nil
	}
	group, ok := supports[section].(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(group))
	for k := range group {
		keys = append(keys, k)
	}
	return keys
}
