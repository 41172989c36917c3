package resolver

// ConditionSatisfied evaluates a shared `condition`/`unless` pair against
// the required-features set (§4.2: "consulted wherever noted — SLC
// sources, includes, defines, template_contributions, config_files,
// toolchain_settings"). A condition list is satisfied iff every listed
// feature is required; an unless list disqualifies iff any listed
// feature is required. An empty condition is trivially satisfied; an
// empty unless never disqualifies.
func ConditionSatisfied(condition, unless []string, requiredFeatures map[string]bool) bool {
	for _, f := range condition {
		if !requiredFeatures[f] {
			return false
		}
	}
	for _, f := range unless {
		if requiredFeatures[f] {
			return false
		}
	}
	return true
}
