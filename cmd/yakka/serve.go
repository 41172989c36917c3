package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/httpserver"
	"github.com/embedded-awesome/yakka/internal/output"
	"github.com/embedded-awesome/yakka/internal/project"
)

func newServeCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the configuration server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	return cmd
}

func runServe(addr string) error {
	projectDir, err := os.Getwd()
	if err != nil {
		return err
	}

	components, err := project.LoadStore(projectDir)
	if err != nil {
		return err
	}

	registries, _, err := loadRegistries()
	if err != nil {
		return err
	}

	projects := project.NewMemoryStore()

	server := httpserver.New(addr, components, registries, projects)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	output.Info("starting configuration server", "addr", addr)
	return server.ListenAndServe(ctx)
}
