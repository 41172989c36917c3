package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
)

func TestRegistryNameFromURL(t *testing.T) {
	cases := map[string]string{
		"https://example.com/parts.git":  "parts",
		"https://example.com/parts/":     "parts",
		"git@example.com:org/parts.git":  "parts",
		"":                               "registry",
	}
	for url, want := range cases {
		assert.Equal(t, want, registryNameFromURL(url), url)
	}
}

func TestReadRegistryDescriptor_ParsesDescriptorFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registry.yaml"), []byte(`
name: parts
provides:
  components: [widget]
`), 0o644))

	reg, err := readRegistryDescriptor(dir)
	require.NoError(t, err)
	assert.Equal(t, "parts", reg.Name)
	assert.Contains(t, reg.Provides.Components, "widget")
}

func TestReadRegistryDescriptor_MissingFileFails(t *testing.T) {
	_, err := readRegistryDescriptor(t.TempDir())
	assert.Error(t, err)
}

func TestNewRegisterCmd_RequiresExactlyOneArg(t *testing.T) {
	cmd := newRegisterCmd(&cmdtypes.GlobalConfig{})
	assert.Equal(t, "register <url>", cmd.Use)
	assert.Error(t, cmd.Args(cmd, nil))
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))
	assert.NoError(t, cmd.Args(cmd, []string{"https://example.com/parts.git"}))
}

func TestRunRegister_ClonesAndPersistsDescriptor(t *testing.T) {
	requireGit(t)

	home := t.TempDir()
	t.Setenv("YAKKA_HOME", home)

	srcDir := t.TempDir()
	initRepo(t, srcDir)
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "registry.yaml"), []byte(`
name: parts
provides:
  components: [widget]
`), 0o644))
	commitAll(t, srcDir, "add descriptor")

	require.NoError(t, runRegister(srcDir))

	store, _, err := loadRegistries()
	require.NoError(t, err)
	reg, ok := store.Get("parts")
	require.True(t, ok)
	assert.Equal(t, srcDir, reg.URL)
	assert.Equal(t, "parts", store.OwnerOf("widget"))
}
