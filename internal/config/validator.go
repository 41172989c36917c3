package config

import (
	"fmt"
	"regexp"
	"strings"
)

// projectNameRegex validates project names: lowercase alphanumeric with
// hyphens, matching the directory- and path-safe names used to build
// <output>/<project>/... paths.
var projectNameRegex = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates a resolved YakkaConfig's fields.
type Validator struct{}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the given configuration.
func (v *Validator) Validate(cfg *YakkaConfig) error {
	var errs ValidationErrors

	if cfg.ProjectName != "" {
		if err := ValidateProjectName(cfg.ProjectName); err != nil {
			errs = append(errs, ValidationError{Field: "project_name", Message: err.Error()})
		}
	}

	if strings.TrimSpace(cfg.OutputDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "output_dir",
			Message: "must not be empty or whitespace only",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateProjectName checks that a project name is a valid path component:
// lowercase alphanumeric with internal hyphens, at most 63 characters.
func ValidateProjectName(name string) error {
	if name == "" {
		return nil
	}

	if !projectNameRegex.MatchString(name) {
		return &ValidationError{
			Field:   "project_name",
			Message: "must be lowercase alphanumeric with hyphens",
		}
	}

	if len(name) > 63 {
		return &ValidationError{
			Field:   "project_name",
			Message: "must be at most 63 characters",
		}
	}

	return nil
}
