package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/output"
	"github.com/embedded-awesome/yakka/internal/registry"
)

func TestNewListCmd_NoArgs(t *testing.T) {
	cmd := newListCmd(&cmdtypes.GlobalConfig{})
	assert.Equal(t, "list", cmd.Use)
	assert.NoError(t, cmd.Args(cmd, nil))
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
}

func setUpListedRegistry(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("YAKKA_HOME", home)

	store, _, err := loadRegistries()
	require.NoError(t, err)
	require.NoError(t, store.Register(&registry.Registry{
		Name:     "parts",
		URL:      "https://example.com/parts.git",
		Provides: registry.RegistryProvides{Components: []string{"widget"}},
	}))
}

func TestRunList_TableFormatIsDefault(t *testing.T) {
	setUpListedRegistry(t)

	cmd := newListCmd(&cmdtypes.GlobalConfig{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, runList(cmd, output.ParseReportFormat("")))
	assert.Contains(t, buf.String(), "parts")
	assert.Contains(t, buf.String(), "- widget")
}

func TestRunList_JSONFormatOutputsComponents(t *testing.T) {
	setUpListedRegistry(t)

	cmd := newListCmd(&cmdtypes.GlobalConfig{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, runList(cmd, output.FormatJSON))
	assert.Contains(t, buf.String(), `"name": "parts"`)
	assert.Contains(t, buf.String(), `"widget"`)
}

func TestRunList_YAMLFormatOutputsComponents(t *testing.T) {
	setUpListedRegistry(t)

	cmd := newListCmd(&cmdtypes.GlobalConfig{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, runList(cmd, output.FormatYAML))
	assert.Contains(t, buf.String(), "name: parts")
}

func TestRemoveString_DropsOnlyMatchingValue(t *testing.T) {
	got := removeString([]string{"a", "b", "a"}, "a")
	assert.Equal(t, []string{"b"}, got)
}

func TestComponentType_DefaultsToComponentWhenNoLocalManifest(t *testing.T) {
	home := t.TempDir()
	assert.Equal(t, "component", componentType(home, "ghost"))
}

func TestComponentType_ReadsTypeFieldFromClonedManifest(t *testing.T) {
	home := t.TempDir()
	repoDir := registry.RepoDir(home, "toolchain-gcc")
	require.NoError(t, os.MkdirAll(repoDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "toolchain-gcc.yaml"), []byte("type: toolchain\n"), 0o644))

	assert.Equal(t, "toolchain", componentType(home, "toolchain-gcc"))
}

func TestGroupByType_SeparatesNonComponentTypes(t *testing.T) {
	home := t.TempDir()
	repoDir := registry.RepoDir(home, "toolchain-gcc")
	require.NoError(t, os.MkdirAll(repoDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "toolchain-gcc.yaml"), []byte("type: toolchain\n"), 0o644))

	reg := &registry.Registry{
		Name:     "parts",
		Provides: registry.RegistryProvides{Components: []string{"toolchain-gcc", "widget"}},
	}

	byType := groupByType(reg, home)
	assert.ElementsMatch(t, []string{"toolchain-gcc"}, byType["toolchain"])
	assert.ElementsMatch(t, []string{"widget"}, byType["component"])
}
