// Package resolver implements the fixpoint epoch loop of §4.2: closing
// the transitive requirement graph over components and features,
// applying conditional `supports.*` fragments, detecting replacement and
// choice conflicts, and reconciling SLC-style alternate-flavour
// requirements.
package resolver

import (
	"github.com/embedded-awesome/yakka/internal/manifest"
	"github.com/embedded-awesome/yakka/internal/merge"
)

// TerminalState names one of the resolver's terminal outcomes (§4.2).
type TerminalState string

const (
	ProjectValid                       TerminalState = "PROJECT_VALID"
	ProjectHasUnknownComponents        TerminalState = "PROJECT_HAS_UNKNOWN_COMPONENTS"
	ProjectHasInvalidComponent         TerminalState = "PROJECT_HAS_INVALID_COMPONENT"
	ProjectHasMultipleReplacements     TerminalState = "PROJECT_HAS_MULTIPLE_REPLACEMENTS"
	ProjectHasUnresolvedRequirements   TerminalState = "PROJECT_HAS_UNRESOLVED_REQUIREMENTS"
)

// State holds the resolver's working sets across epochs (§4.2). Required
// sets, replacements and the provided/unprovided feature sets grow
// monotonically within a single epoch; a new replacement discovered
// mid-epoch triggers the reset of step 4.
type State struct {
	Store *manifest.Store

	// Uc, Uf are the unprocessed-component and unprocessed-feature queues.
	Uc []string
	Uf []string

	// Rc, Rf are the required-component and required-feature sets.
	Rc map[string]bool
	Rf map[string]bool

	// Pf, UPf are the provided and unprovided feature sets.
	Pf  map[string]bool
	UPf map[string]bool

	// Choices holds every choice declared by a required component,
	// keyed by choice name; last-required-component wins on name clash,
	// matching the manifest merge's right-biased default.
	Choices map[string]manifest.Choice

	// Rep maps a replaced component id to the id that replaces it.
	Rep map[string]string

	// pendingRep accumulates replacements discovered within the current
	// epoch; committed (merged into Rep) and reset at epoch boundary (step 4).
	pendingRep map[string]string

	// Rec maps an unprovided feature name to a recommended component or
	// feature id to try next (step 5).
	Rec map[string]string

	// Inst maps a component id to the instance names requested of it
	// (SLC `requires.components[].instance`, multi-valued).
	Inst map[string][]string

	// SLCRec records which SLC provider ids are "recommended" per §4.2
	// step 6 (drawn from a requiring component's own recommends list).
	SLCRec map[string]bool

	// Overrides holds the merged `supports.*` fragment applied to each
	// component id so far, keyed by component id, used to avoid
	// re-merging an already-applied fragment.
	Overrides map[string]map[string]bool // component id -> set of applied fragment keys

	// Manifests holds each required component's manifest, merged with
	// any `supports.*` fragments applied to it during resolution. This
	// is the mutable-per-component working copy; Store's copies are
	// never mutated (§ design note on structural sharing).
	Manifests map[string]*manifest.Manifest

	unknown    map[string]bool
	invalid    map[string]error
	strategies merge.StrategyTable

	epoch    int
	terminal TerminalState
}

// NewState seeds a fresh resolver state from the initial component and
// feature request (C₀, F₀).
func NewState(store *manifest.Store, initialComponents, initialFeatures []string) *State {
	s := &State{
		Store:      store,
		Rc:         map[string]bool{},
		Rf:         map[string]bool{},
		Pf:         map[string]bool{},
		UPf:        map[string]bool{},
		Choices:    map[string]manifest.Choice{},
		Rep:        map[string]string{},
		pendingRep: map[string]string{},
		Rec:        map[string]string{},
		Inst:       map[string][]string{},
		SLCRec:     map[string]bool{},
		Overrides:  map[string]map[string]bool{},
		Manifests:  map[string]*manifest.Manifest{},
		unknown:    map[string]bool{},
		invalid:    map[string]error{},
		strategies: merge.BuildStrategyTable(),
	}
	s.seed(initialComponents, initialFeatures)
	return s
}

func (s *State) seed(components, features []string) {
	s.Uc = append([]string{}, components...)
	s.Uf = append([]string{}, features...)
}

// reset reseeds the resolver from the original request after a
// replacement commit (§4.2 step 4), discarding all required state but
// keeping committed replacements, recommendations and choice
// declarations accumulated so far.
func (s *State) reset(initialComponents, initialFeatures []string) {
	s.Rc = map[string]bool{}
	s.Rf = map[string]bool{}
	s.Pf = map[string]bool{}
	s.UPf = map[string]bool{}
	s.Overrides = map[string]map[string]bool{}
	s.Manifests = map[string]*manifest.Manifest{}
	s.Choices = map[string]manifest.Choice{}
	s.seed(initialComponents, initialFeatures)
	s.epoch++
}

// Terminal reports the resolver's terminal state, valid only after Run
// has returned.
func (s *State) Terminal() TerminalState {
	return s.terminal
}

// Epoch reports how many replacement-triggered resets have occurred.
func (s *State) Epoch() int {
	return s.epoch
}
