// Package blueprint implements the blueprint matcher (C5, §4.4): given a
// target name, produces the set of matching blueprint rules, with
// dependency names rendered through the templating engine.
package blueprint

import "github.com/embedded-awesome/yakka/internal/manifest"

// DependencyType classifies a matched blueprint's rendered dependency
// (§4.4 step 3).
type DependencyType string

const (
	TypeFile    DependencyType = "file"
	TypeData    DependencyType = "data"
	TypeDefault DependencyType = "default"
)

// DataPrefix marks a pseudo-target whose freshness derives from a data
// diff against the previous summary (§3's "data dependency").
const DataPrefix = ":"

// Dependency is one resolved dependency name of a matched blueprint,
// after template rendering and type dispatch.
type Dependency struct {
	Name string
	Type DependencyType
}

// Match is one blueprint rule matched against a target (§4.4).
type Match struct {
	OwnerID      string // component id that declared the blueprint
	Pattern      string
	Regex        bool
	Group        string
	Requirements []string
	Process      []map[string]any
	ParentPath   string   // curdir(): the owning manifest's source directory
	RegexMatches []string // index 0 = full match; nil for literal matches

	// Dependencies is populated by ResolveDependencies after rendering.
	Dependencies []Dependency

	// depends carries the unrendered dependency declarations this match
	// was built from, consumed by ResolveDependencies.
	depends []manifest.DependencyDecl
}

// GroupOrDefault returns the match's progress group, defaulting to
// "Processing" per §4.6.
func (m Match) GroupOrDefault() string {
	if m.Group == "" {
		return "Processing"
	}
	return m.Group
}

func declToMatch(ownerID string, decl manifest.BlueprintDecl, regexMatches []string) Match {
	return Match{
		OwnerID:      ownerID,
		Pattern:      decl.Pattern,
		Regex:        decl.Regex,
		Group:        decl.Group,
		Requirements: decl.Requirements,
		Process:      decl.Process,
		RegexMatches: regexMatches,
		depends:      decl.Depends,
	}
}
