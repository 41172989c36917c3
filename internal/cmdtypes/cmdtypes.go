// Package cmdtypes provides shared types for the cmd package and its sub-packages.
package cmdtypes

import (
	oerrors "github.com/embedded-awesome/yakka/internal/errors"

	"github.com/embedded-awesome/yakka/internal/config"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every action
// constructor, replacing package-level mutable globals.
type GlobalConfig struct {
	YakkaConfig  *config.YakkaConfig
	ConfigPath   string // resolved --config path
	Registry     string // resolved --registry URL
	RegistryFlag string // raw --registry flag value
	Verbose      bool
}

// Exit codes — type aliases to internal/errors constants.
const (
	ExitSuccess          = oerrors.ExitSuccess
	ExitGeneralError     = oerrors.ExitGeneralError
	ExitResolverError    = oerrors.ExitResolverError
	ExitTaskError        = oerrors.ExitTaskError
	ExitConfigError      = oerrors.ExitConfigError
	ExitConnectivity     = oerrors.ExitConnectivity
	ExitPermissionDenied = oerrors.ExitPermissionDenied
	ExitNotFound         = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
// This allows cmd package code to continue using cmd.ExitError
// while using the same underlying type across all packages.
type ExitError = oerrors.ExitError
