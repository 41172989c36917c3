package resolver

import (
	"sort"

	oerrors "github.com/embedded-awesome/yakka/internal/errors"
	"github.com/embedded-awesome/yakka/internal/manifest"
	"github.com/embedded-awesome/yakka/internal/merge"
)

// Result is the resolver's output after the epoch loop and the
// post-fixpoint choice pass (§4.2).
type Result struct {
	Terminal TerminalState

	RequiredComponents map[string]bool
	RequiredFeatures   map[string]bool
	ProvidedFeatures   map[string]bool
	UnprovidedFeatures map[string]bool
	Replacements       map[string]string
	Choices            map[string]manifest.Choice
	Instances          map[string][]string

	// Manifests holds each required component's manifest, with every
	// applicable `supports.*` fragment folded in.
	Manifests map[string]*manifest.Manifest

	Unknown      []string
	ChoiceErrors []error
}

// Resolve runs the fixpoint epoch loop of §4.2 to closure, then the
// separate evaluate_choices pass, starting from an initial component and
// feature request.
func Resolve(store *manifest.Store, initialComponents, initialFeatures []string) (*Result, error) {
	s := NewState(store, initialComponents, initialFeatures)

	for {
		if err := s.drainComponents(); err != nil {
			return s.result(ProjectHasMultipleReplacements), err
		}
		s.drainFeatures()

		if len(s.Uc) > 0 || len(s.Uf) > 0 {
			continue
		}

		// Step 3: choice defaults.
		if s.applyChoiceDefaults() {
			continue
		}

		// Step 4: commit pending replacements and reset the epoch.
		if len(s.pendingRep) > 0 {
			for r, rep := range s.pendingRep {
				s.Rep[r] = rep
			}
			s.pendingRep = map[string]string{}
			s.reset(initialComponents, initialFeatures)
			continue
		}

		// Step 5: recommendations for unprovided features.
		if s.applyRecommendations() {
			continue
		}

		// Step 6: SLC-style reconciliation.
		if s.reconcileSLC() {
			continue
		}

		// Step 7: both queues empty, nothing left to try.
		break
	}

	if len(s.unknown) > 0 {
		return s.result(ProjectHasUnknownComponents), oerrors.NewUnknownComponentError(firstKey(s.unknown))
	}
	if len(s.invalid) > 0 {
		ids := make([]string, 0, len(s.invalid))
		for id := range s.invalid {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return s.result(ProjectHasInvalidComponent), s.invalid[ids[0]]
	}
	if len(s.UPf) > 0 {
		return s.result(ProjectHasUnresolvedRequirements), oerrors.NewUnresolvedRequirementsError(sortedKeys(s.UPf))
	}

	choiceErrs := EvaluateChoices(s.Choices, s.Rf, s.Rc)
	s.terminal = ProjectValid
	result := s.result(ProjectValid)
	result.ChoiceErrors = choiceErrs
	return result, nil
}

func (s *State) result(terminal TerminalState) *Result {
	s.terminal = terminal
	return &Result{
		Terminal:           terminal,
		RequiredComponents: s.Rc,
		RequiredFeatures:   s.Rf,
		ProvidedFeatures:   s.Pf,
		UnprovidedFeatures: s.UPf,
		Replacements:       s.Rep,
		Choices:            s.Choices,
		Instances:          s.Inst,
		Manifests:          s.Manifests,
		Unknown:            sortedKeys(s.unknown),
	}
}

// drainComponents is step 1: drain U_c to closure, following
// replacements, parsing new manifests, applying already-satisfied
// `supports.*` fragments, and recording replacement claims.
func (s *State) drainComponents() error {
	for len(s.Uc) > 0 {
		c := s.Uc[0]
		s.Uc = s.Uc[1:]

		// 1a: redirect through a committed replacement.
		if rep, ok := s.Rep[c]; ok {
			s.Uc = append(s.Uc, rep)
			continue
		}

		// 1b: unknown component.
		m, ok := s.Store.Get(c)
		if !ok {
			s.unknown[c] = true
			continue
		}

		// 1c: already required, nothing new.
		if s.Rc[c] {
			continue
		}

		clone, err := merge.Merge(nil, m.Raw, "", s.strategies)
		if err != nil {
			s.invalid[c] = err
			continue
		}
		own := manifest.FromRaw(clone.(map[string]any), m.ID, m.Source)

		s.Rc[c] = true
		s.Manifests[c] = own
		s.recordInstances(m.Raw)

		for _, feature := range own.ProvidesFeatures {
			s.Pf[feature] = true
			delete(s.UPf, feature)
		}
		for name, choice := range own.Choices {
			s.Choices[name] = choice
		}
		for _, id := range own.RequiresComponents {
			s.Uc = append(s.Uc, id)
		}
		for _, f := range own.RequiresFeatures {
			s.Uf = append(s.Uf, f)
		}
		if own.SLC != nil {
			for _, rec := range own.SLC.Recommends {
				s.SLCRec[rec] = true
			}
		}

		// 1f: replacement claim. A replacement already committed in a
		// prior epoch carries no new information and must not be
		// re-queued as pending, or every epoch would re-discover it and
		// reset forever.
		if own.Replaces != "" {
			if existing, ok := s.Rep[own.Replaces]; ok {
				if existing != c {
					return oerrors.NewMultipleReplacementsError(own.Replaces, existing, c)
				}
			} else if existing, ok := s.pendingRep[own.Replaces]; ok && existing != c {
				return oerrors.NewMultipleReplacementsError(own.Replaces, existing, c)
			} else {
				s.pendingRep[own.Replaces] = c
			}
		}

		// 1d: fragments already satisfied by features required so far.
		for f := range s.Rf {
			s.applySupportsFeature(c, f)
		}
	}

	// 1e: supports.components.<c> is symmetric and can be declared by
	// any required component about any other required component, so it
	// is swept across every pair already in R_c once new ids settle.
	for declarer := range s.Rc {
		for target := range s.Rc {
			s.applySupportsComponent(declarer, target)
		}
	}

	return nil
}

// drainFeatures is step 2: drain U_f, classifying each into provided or
// unprovided, and applying any newly-satisfied supports.features.<f>.
func (s *State) drainFeatures() {
	for len(s.Uf) > 0 {
		f := s.Uf[0]
		s.Uf = s.Uf[1:]

		if s.Rf[f] {
			continue
		}
		s.Rf[f] = true
		if s.Pf[f] {
			delete(s.UPf, f)
		} else {
			s.UPf[f] = true
		}

		for c := range s.Rc {
			s.applySupportsFeature(c, f)
		}
	}
}

// applySupportsFeature merges component c's `supports.features.<f>`
// fragment into its own manifest, once, and enqueues anything newly
// required by the merged result.
func (s *State) applySupportsFeature(c, f string) {
	m := s.Manifests[c]
	if m == nil {
		return
	}
	fragment, ok := m.SupportsFeature(f)
	if !ok {
		return
	}
	s.applyFragment(c, "features:"+f, fragment)
}

// applySupportsComponent merges declarer's `supports.components.<c>`
// fragment into declarer's own manifest when target is required.
func (s *State) applySupportsComponent(declarer, target string) {
	m := s.Manifests[declarer]
	if m == nil {
		return
	}
	fragment, ok := m.SupportsComponent(target)
	if !ok {
		return
	}
	s.applyFragment(declarer, "components:"+target, fragment)
}

func (s *State) applyFragment(id, key string, fragment map[string]any) {
	applied := s.Overrides[id]
	if applied == nil {
		applied = map[string]bool{}
		s.Overrides[id] = applied
	}
	if applied[key] {
		return
	}
	applied[key] = true

	m := s.Manifests[id]
	mergedRaw, err := merge.Merge(m.Raw, fragment, "", s.strategies)
	if err != nil {
		s.invalid[id] = err
		return
	}
	merged := manifest.FromRaw(mergedRaw.(map[string]any), m.ID, m.Source)

	before := m
	s.Manifests[id] = merged

	for _, feature := range merged.ProvidesFeatures {
		s.Pf[feature] = true
		delete(s.UPf, feature)
	}
	for name, choice := range merged.Choices {
		s.Choices[name] = choice
	}
	for _, reqID := range newEntries(before.RequiresComponents, merged.RequiresComponents) {
		s.Uc = append(s.Uc, reqID)
	}
	for _, reqF := range newEntries(before.RequiresFeatures, merged.RequiresFeatures) {
		s.Uf = append(s.Uf, reqF)
	}
}

// applyChoiceDefaults is step 3: when both queues are empty, a choice
// with zero matches and a declared default enqueues that default.
func (s *State) applyChoiceDefaults() bool {
	progressed := false
	for _, choice := range s.Choices {
		if choice.Default == "" {
			continue
		}
		if choiceMatchCount(choice, s.Rf, s.Rc) > 0 {
			continue
		}
		if contains(choice.Features, choice.Default) {
			s.Uf = append(s.Uf, choice.Default)
			progressed = true
		} else if contains(choice.Components, choice.Default) {
			s.Uc = append(s.Uc, choice.Default)
			progressed = true
		}
	}
	return progressed
}

// applyRecommendations is step 5: an unprovided feature with a
// recommendation enqueues that recommendation instead.
func (s *State) applyRecommendations() bool {
	progressed := false
	for f := range s.UPf {
		rec, ok := s.Rec[f]
		if !ok {
			continue
		}
		if _, isComponent := s.Store.Get(rec); isComponent {
			s.Uc = append(s.Uc, rec)
		} else {
			s.Uf = append(s.Uf, rec)
		}
		progressed = true
	}
	return progressed
}

// reconcileSLC is step 6: partitions each unresolved SLC-style
// requirement's providers into recommended and other, per the
// cardinality rules of §4.2.
func (s *State) reconcileSLC() bool {
	progressed := false
	for f := range s.UPf {
		providers := s.Store.ProvidersOf(f)
		if len(providers) == 0 {
			continue
		}

		var recommended, other []string
		for _, p := range providers {
			if s.SLCRec[p] {
				recommended = append(recommended, p)
			} else {
				other = append(other, p)
			}
		}

		switch {
		case len(recommended) == 1:
			s.Uc = append(s.Uc, recommended[0])
			progressed = true
		case len(recommended) == 0 && len(other) == 1:
			s.Uc = append(s.Uc, other[0])
			progressed = true
		default:
			// multiple recommended, or multiple/zero other: leave
			// unresolved for the terminal unresolved-requirements report.
		}
	}
	return progressed
}

// recordInstances extracts `requires.components[].instance` entries from
// a requiring component's raw tree into Inst (component id -> instance
// names requested of it).
func (s *State) recordInstances(raw map[string]any) {
	requires, ok := raw["requires"].(map[string]any)
	if !ok {
		return
	}
	seq, ok := requires["components"].([]any)
	if !ok {
		return
	}
	for _, item := range seq {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, _ := entry["id"].(string)
		if id == "" {
			continue
		}
		switch inst := entry["instance"].(type) {
		case string:
			s.Inst[id] = appendIfAbsent(s.Inst[id], inst)
		case []any:
			for _, v := range inst {
				if name, ok := v.(string); ok {
					s.Inst[id] = appendIfAbsent(s.Inst[id], name)
				}
			}
		}
	}
}

func choiceMatchCount(choice manifest.Choice, rf, rc map[string]bool) int {
	count := 0
	for _, f := range choice.Features {
		if rf[f] {
			count++
		}
	}
	for _, c := range choice.Components {
		if rc[c] {
			count++
		}
	}
	return count
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func newEntries(before, after []string) []string {
	seen := make(map[string]bool, len(before))
	for _, v := range before {
		seen[v] = true
	}
	var out []string
	for _, v := range after {
		if !seen[v] {
			out = append(out, v)
		}
	}
	return out
}

func appendIfAbsent(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func firstKey(m map[string]bool) string {
	keys := sortedKeys(m)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
