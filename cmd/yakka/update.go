package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/output"
	"github.com/embedded-awesome/yakka/internal/registry"
)

func newUpdateCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "update <component>...",
		Short: "Update one or more components' cloned repos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runUpdate(args)
		},
	}
}

func runUpdate(components []string) error {
	home, err := yakkaHome()
	if err != nil {
		return err
	}

	for _, id := range components {
		dir := registry.RepoDir(home, id)
		if !registry.IsRepo(dir) {
			return fmt.Errorf("component %s has no cloned repo to update", id)
		}
		output.Info("updating component", "component", id)
		err := output.WithSpinner(context.Background(), "Updating "+id, func() error {
			return registry.Update(dir)
		})
		if err != nil {
			return fmt.Errorf("updating component %s: %w", id, err)
		}
	}

	output.Info("update complete")
	return nil
}
