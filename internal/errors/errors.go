// Package errors provides sentinel errors and exit-code plumbing for yakka.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known resolver/build conditions (§7 of the spec).
var (
	// ErrUnknownComponent indicates a referenced component id is absent from every store.
	ErrUnknownComponent = errors.New("unknown component")

	// ErrInvalidComponent indicates a manifest parse or schema failure.
	ErrInvalidComponent = errors.New("invalid component")

	// ErrMultipleReplacements indicates two components claim to replace the same id.
	ErrMultipleReplacements = errors.New("multiple replacements")

	// ErrIncompleteChoice indicates a reachable choice has no satisfied option and no default.
	ErrIncompleteChoice = errors.New("incomplete choice")

	// ErrMultipleAnswers indicates more than one option of a choice is satisfied.
	ErrMultipleAnswers = errors.New("multiple answers")

	// ErrUnresolvedRequirements indicates features remain unprovided after the fixpoint.
	ErrUnresolvedRequirements = errors.New("unresolved requirements")

	// ErrTaskFailed indicates a blueprint command returned a negative retcode.
	ErrTaskFailed = errors.New("task failed")

	// ErrDataDependency indicates a malformed data-dependency path.
	ErrDataDependency = errors.New("data dependency error")

	// ErrInvalidConfig indicates a global or project configuration failure.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// DetailError captures structured error information for a single failure.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the manifest path or file involved (optional).
	Location string

	// Field is the field name for schema/choice errors (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying sentinel error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying sentinel error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewUnknownComponentError reports a component id absent from every store.
func NewUnknownComponentError(id string) error {
	return &DetailError{
		Type:    "unknown component",
		Message: fmt.Sprintf("component %q was required but is not present in any registry", id),
		Field:   id,
		Cause:   ErrUnknownComponent,
	}
}

// NewInvalidComponentError reports a manifest parse or schema failure.
func NewInvalidComponentError(id, location string, cause error) error {
	return &DetailError{
		Type:     "invalid component",
		Message:  fmt.Sprintf("component %q failed to parse", id),
		Location: location,
		Context:  map[string]string{"cause": causeString(cause)},
		Cause:    ErrInvalidComponent,
	}
}

// NewMultipleReplacementsError reports two replacements competing for one id.
func NewMultipleReplacementsError(replaced, first, second string) error {
	return &DetailError{
		Type:    "multiple replacements",
		Message: fmt.Sprintf("component %q is replaced by both %q and %q", replaced, first, second),
		Field:   replaced,
		Cause:   ErrMultipleReplacements,
	}
}

// NewIncompleteChoiceError reports a choice with no satisfied option and no default.
func NewIncompleteChoiceError(choice string) error {
	return &DetailError{
		Type:    "incomplete choice",
		Message: fmt.Sprintf("choice %q has no satisfied option and no default", choice),
		Field:   choice,
		Cause:   ErrIncompleteChoice,
	}
}

// NewMultipleAnswersError reports a choice with more than one satisfied option.
func NewMultipleAnswersError(choice string, options []string) error {
	return &DetailError{
		Type:    "multiple answer choice",
		Message: fmt.Sprintf("choice %q is satisfied by more than one option: %s", choice, strings.Join(options, ", ")),
		Field:   choice,
		Cause:   ErrMultipleAnswers,
	}
}

// NewUnresolvedRequirementsError reports features left unprovided after the fixpoint.
func NewUnresolvedRequirementsError(features []string) error {
	return &DetailError{
		Type:    "unresolved requirements",
		Message: fmt.Sprintf("%d feature(s) remain unprovided: %s", len(features), strings.Join(features, ", ")),
		Cause:   ErrUnresolvedRequirements,
	}
}

// NewInvalidConfigError reports a global or project configuration failure.
func NewInvalidConfigError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "configuration error",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrInvalidConfig,
	}
}

func causeString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
