package resolver

import (
	"github.com/embedded-awesome/yakka/internal/manifest"
	oerrors "github.com/embedded-awesome/yakka/internal/errors"
)

// EvaluateChoices is the separate post-fixpoint pass named in §4.2:
// every choice reachable from a required component must have exactly
// one satisfied option in the final state. Zero matches with no default
// is incomplete-choices; more than one is multiple-answer-choices. Both
// conditions are collected across every choice rather than failing on
// the first, so a single run reports every offending choice at once.
func EvaluateChoices(choices map[string]manifest.Choice, requiredFeatures, requiredComponents map[string]bool) []error {
	var errs []error
	for name, choice := range choices {
		var matched []string
		for _, f := range choice.Features {
			if requiredFeatures[f] {
				matched = append(matched, f)
			}
		}
		for _, c := range choice.Components {
			if requiredComponents[c] {
				matched = append(matched, c)
			}
		}

		switch {
		case len(matched) == 0:
			if choice.Default != "" {
				continue
			}
			errs = append(errs, oerrors.NewIncompleteChoiceError(name))
		case len(matched) > 1:
			errs = append(errs, oerrors.NewMultipleAnswersError(name, matched))
		}
	}
	return errs
}
