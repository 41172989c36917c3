package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddAndGet(t *testing.T) {
	store := NewStore()
	m, err := Parse([]byte(`provides: {features: [net]}`), "app", "app.yaml")
	require.NoError(t, err)
	store.Add(m)

	got, ok := store.Get("app")
	require.True(t, ok)
	assert.Same(t, m, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestStore_MustGetUnknownComponentErrors(t *testing.T) {
	store := NewStore()
	_, err := store.MustGet("missing")
	assert.Error(t, err)
}

func TestStore_AddReplacesSameID(t *testing.T) {
	store := NewStore()
	first, _ := Parse([]byte(`provides: {features: [a]}`), "app", "first.yaml")
	second, _ := Parse([]byte(`provides: {features: [b]}`), "app", "second.yaml")
	store.Add(first)
	store.Add(second)

	got, ok := store.Get("app")
	require.True(t, ok)
	assert.Equal(t, "second.yaml", got.Source)
}

func TestStore_ProvidersOf(t *testing.T) {
	store := NewStore()
	a, _ := Parse([]byte(`provides: {features: [net]}`), "a", "a.yaml")
	b, _ := Parse([]byte(`provides: {features: [net]}`), "b", "b.yaml")
	store.Add(a)
	store.Add(b)

	assert.ElementsMatch(t, []string{"a", "b"}, store.ProvidersOf("net"))
	assert.Empty(t, store.ProvidersOf("nothing"))
}

func TestStore_AllIsSortedByID(t *testing.T) {
	store := NewStore()
	for _, id := range []string{"charlie", "alpha", "bravo"} {
		m, _ := Parse([]byte(``), id, id+".yaml")
		store.Add(m)
	}

	var ids []string
	for _, m := range store.All() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, ids)
}

func TestStore_LoadDirDerivesIDFromDottedName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toolchains.gcc-arm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`provides: {features: [gcc]}`), 0o644))

	store := NewStore()
	require.NoError(t, store.LoadDir(dir))

	m, ok := store.Get("toolchains.gcc-arm")
	require.True(t, ok)
	assert.Equal(t, []string{"gcc"}, m.ProvidesFeatures)
}

func TestStore_LoadDirSkipsNonYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(``), 0o644))

	store := NewStore()
	require.NoError(t, store.LoadDir(dir))

	assert.Len(t, store.All(), 1)
}

func TestStore_LoadDirWalksSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "child.yaml"), []byte(``), 0o644))

	store := NewStore()
	require.NoError(t, store.LoadDir(dir))

	_, ok := store.Get("child")
	assert.True(t, ok)
}
