package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistriesDir_UsesYakkaHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("YAKKA_HOME", home)

	dir, err := registriesDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "registries"), dir)
}

func TestYakkaHome_UsesYakkaHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("YAKKA_HOME", home)

	got, err := yakkaHome()
	require.NoError(t, err)
	assert.Equal(t, home, got)
}

func TestLoadRegistries_EmptyWhenUnset(t *testing.T) {
	home := t.TempDir()
	t.Setenv("YAKKA_HOME", home)

	store, dir, err := loadRegistries()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "registries"), dir)
	assert.Empty(t, store.All())
}
