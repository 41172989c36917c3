// Package main is the entry point for the yakka CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	oerrors "github.com/embedded-awesome/yakka/internal/errors"
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		// The CLI contract (§6) only ever exposes 0 or -1 at the process
		// boundary; internal exit codes (oerrors.CodeOf) distinguish
		// failure kinds for tests and callers that want finer detail.
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) && exitErr.Printed {
			os.Exit(-1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}
