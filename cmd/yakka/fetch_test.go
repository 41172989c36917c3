package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/registry"
)

func TestNewFetchCmd_RequiresAtLeastOneArg(t *testing.T) {
	cmd := newFetchCmd(&cmdtypes.GlobalConfig{})
	assert.Equal(t, "fetch <component>...", cmd.Use)
	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"widget"}))
}

func TestRunFetch_UnknownComponentFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv("YAKKA_HOME", home)

	err := runFetch([]string{"ghost"})
	assert.Error(t, err)
}

func TestRunFetch_ClonesOwningRegistrysRepo(t *testing.T) {
	requireGit(t)

	home := t.TempDir()
	t.Setenv("YAKKA_HOME", home)

	srcDir := t.TempDir()
	initRepo(t, srcDir)
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "widget.yaml"), []byte("provides: {features: [spin]}\n"), 0o644))
	commitAll(t, srcDir, "add widget")

	store, _, err := loadRegistries()
	require.NoError(t, err)
	require.NoError(t, store.Register(&registry.Registry{
		Name:     "parts",
		URL:      srcDir,
		Provides: registry.RegistryProvides{Components: []string{"widget"}},
	}))

	require.NoError(t, runFetch([]string{"widget"}))

	_, err = os.Stat(filepath.Join(registry.RepoDir(home, "widget"), "widget.yaml"))
	assert.NoError(t, err)
}
