package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/output"
	"github.com/embedded-awesome/yakka/internal/registry"
)

func newRegisterCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "register <url>",
		Short: "Add a component registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRegister(args[0])
		},
	}
}

// runRegister clones a registry's repo to read its descriptor, then
// writes the descriptor under `.yakka/registries/` (§6).
func runRegister(url string) error {
	home, err := yakkaHome()
	if err != nil {
		return err
	}

	name := registryNameFromURL(url)
	stagingDir := filepath.Join(home, "registries-src", name)

	output.Info("adding component registry", "url", url)
	err = output.WithSpinner(context.Background(), "Cloning "+name, func() error {
		return registry.Clone(url, stagingDir)
	})
	if err != nil {
		return err
	}

	reg := &registry.Registry{Name: name, URL: url}
	if descriptor, err := readRegistryDescriptor(stagingDir); err == nil {
		reg.Provides = descriptor.Provides
		if descriptor.Name != "" {
			reg.Name = descriptor.Name
		}
	}

	store, _, err := loadRegistries()
	if err != nil {
		return err
	}
	if err := store.Register(reg); err != nil {
		return err
	}

	output.Info("registry added", "name", reg.Name)
	return nil
}

func registryNameFromURL(url string) string {
	name := strings.TrimSuffix(url, "/")
	name = strings.TrimSuffix(name, ".git")
	if idx := strings.LastIndexAny(name, "/:"); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		name = "registry"
	}
	return name
}

func readRegistryDescriptor(repoDir string) (*registry.Registry, error) {
	for _, candidate := range []string{"registry.yaml", "registry.yml"} {
		path := filepath.Join(repoDir, candidate)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		store, err := registry.LoadStore(repoDir)
		if err != nil {
			return nil, err
		}
		for _, reg := range store.All() {
			return reg, nil
		}
	}
	return nil, fmt.Errorf("no registry descriptor found in %s", repoDir)
}
