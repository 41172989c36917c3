package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/output"
	"github.com/embedded-awesome/yakka/internal/registry"
)

func newRemoveCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <component>...",
		Short: "Remove one or more cloned component repos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRemove(args)
		},
	}
}

func runRemove(components []string) error {
	home, err := yakkaHome()
	if err != nil {
		return err
	}

	for _, id := range components {
		dir := registry.RepoDir(home, id)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		output.Info("removing component", "path", dir)
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}

	output.Info("remove complete")
	return nil
}
