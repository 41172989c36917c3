package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/manifest"
	"github.com/embedded-awesome/yakka/internal/output"
	"github.com/embedded-awesome/yakka/internal/registry"
)

func newListCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registries and the components they provide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, output.ParseReportFormat(format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: "+strings.Join(output.ValidReportFormats(), "|"))
	return cmd
}

// registryListing is the structured form of a registry's components,
// grouped by declared type, used for the json/yaml report formats.
type registryListing struct {
	Name       string              `json:"name" yaml:"name"`
	Components map[string][]string `json:"components" yaml:"components"`
}

// runList prints every known registry and its component ids grouped by
// declared type, falling back to the component's own manifest (cloned
// locally, if any) for the type when the registry descriptor doesn't
// carry one.
func runList(cmd *cobra.Command, format output.ReportFormat) error {
	store, _, err := loadRegistries()
	if err != nil {
		return err
	}

	home, err := yakkaHome()
	if err != nil {
		return err
	}

	var listings []registryListing
	for _, reg := range store.All() {
		listings = append(listings, registryListing{Name: reg.Name, Components: groupByType(reg, home)})
	}

	out := cmd.OutOrStdout()
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case output.FormatYAML:
		data, err := yaml.Marshal(listings)
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(data))
	default:
		printListingsTable(out, listings)
	}
	return nil
}

func printListingsTable(out io.Writer, listings []registryListing) {
	for _, listing := range listings {
		fmt.Fprintln(out, listing.Name)

		types := make([]string, 0, len(listing.Components))
		for t := range listing.Components {
			types = append(types, t)
		}
		sort.Strings(types)

		for _, t := range types {
			fmt.Fprintf(out, "type: %s\n", t)
			ids := listing.Components[t]
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintf(out, "  - %s\n", id)
			}
		}
	}
}

func groupByType(reg *registry.Registry, home string) map[string][]string {
	byType := map[string][]string{}
	for _, id := range reg.Provides.Components {
		byType["component"] = append(byType["component"], id)
	}

	for _, id := range reg.Provides.Components {
		manifestType := componentType(home, id)
		if manifestType == "component" {
			continue
		}
		byType["component"] = removeString(byType["component"], id)
		byType[manifestType] = append(byType[manifestType], id)
	}
	return byType
}

func componentType(home, id string) string {
	repoDir := registry.RepoDir(home, id)
	store := manifest.NewStore()
	if err := store.LoadDir(repoDir); err != nil {
		return "component"
	}
	m, ok := store.Get(id)
	if !ok {
		return "component"
	}
	if t, ok := m.Raw["type"].(string); ok && t != "" {
		return t
	}
	return "component"
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
