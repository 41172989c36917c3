package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/output"
	"github.com/embedded-awesome/yakka/internal/registry"
)

func newFetchCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <component>...",
		Short: "Fetch components from their owning registry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runFetch(args)
		},
	}
}

// runFetch clones each named component's owning registry repo, the
// standalone counterpart to the -f/--fetch build flag's "refresh what's
// already cloned" behaviour.
func runFetch(components []string) error {
	store, _, err := loadRegistries()
	if err != nil {
		return err
	}
	home, err := yakkaHome()
	if err != nil {
		return err
	}

	for _, id := range components {
		owner := store.OwnerOf(id)
		if owner == "" {
			return fmt.Errorf("cannot fetch %s: no registry provides it", id)
		}
		reg, ok := store.Get(owner)
		if !ok {
			return fmt.Errorf("cannot fetch %s: registry %s not found", id, owner)
		}

		dir := registry.RepoDir(home, id)
		output.Info("fetching component", "component", id, "registry", owner)
		err := output.WithSpinner(context.Background(), "Fetching "+id, func() error {
			return registry.Clone(reg.URL, dir)
		})
		if err != nil {
			return fmt.Errorf("fetching %s: %w", id, err)
		}
	}

	output.Info("fetch complete")
	return nil
}
