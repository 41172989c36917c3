package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedded-awesome/yakka/internal/blueprint"
	"github.com/embedded-awesome/yakka/internal/summary"
)

type fakeDB struct {
	matches map[string][]blueprint.Match
}

func (f *fakeDB) Targets() []string {
	out := make([]string, 0, len(f.matches))
	for t := range f.matches {
		out = append(out, t)
	}
	return out
}

func (f *fakeDB) Matches(target string) []blueprint.Match {
	return f.matches[target]
}

func TestPersist_WritesSummaryAndContributions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	sum := &summary.Summary{
		ProjectName: "app",
		Components:  map[string]any{"app": map[string]any{}},
		Features:    []string{"net"},
		TemplateContributions: map[string][]any{
			"cmake": {"add_library(app)"},
		},
	}

	require.NoError(t, Persist(dir, sum, nil))

	for _, name := range []string{"bob_summary.json", "bob_summary.yaml", "template_contributions.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoErrorf(t, err, "expected %s to exist", name)
	}
	_, err := os.Stat(filepath.Join(dir, "blueprints.json"))
	assert.True(t, os.IsNotExist(err), "blueprints.json should not be written when db is nil")

	data, err := os.ReadFile(filepath.Join(dir, "bob_summary.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"project_name\": \"app\"")
}

func TestPersist_WritesBlueprintsWhenDBGiven(t *testing.T) {
	dir := t.TempDir()
	sum := &summary.Summary{ProjectName: "app"}
	db := &fakeDB{matches: map[string][]blueprint.Match{
		"build/app": {{OwnerID: "app", Pattern: "build/app"}},
	}}

	require.NoError(t, Persist(dir, sum, db))

	data, err := os.ReadFile(filepath.Join(dir, "blueprints.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "build/app")
}

func TestLoadPreviousSummaryData_ReadsBackPersistedData(t *testing.T) {
	dir := t.TempDir()
	sum := &summary.Summary{
		ProjectName: "app",
		Components:  map[string]any{},
		Data:        map[string]any{"toolchain": map[string]any{"arch": "arm"}},
	}
	require.NoError(t, Persist(dir, sum, nil))

	data, err := LoadPreviousSummaryData(dir)
	require.NoError(t, err)
	toolchain, ok := data["toolchain"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "arm", toolchain["arch"])
}

func TestLoadPreviousSummaryData_MissingFileIsNotAnError(t *testing.T) {
	data, err := LoadPreviousSummaryData(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestLoadPreviousSummaryData_InvalidJSONFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bob_summary.json"), []byte("not json"), 0o644))

	_, err := LoadPreviousSummaryData(dir)
	assert.Error(t, err)
}

func TestExportDB_CollectsEveryTarget(t *testing.T) {
	db := &fakeDB{matches: map[string][]blueprint.Match{
		"a": {{OwnerID: "x"}},
		"b": nil,
	}}
	out := exportDB(db)
	assert.Len(t, out, 2)
	assert.Len(t, out["a"], 1)
	assert.Empty(t, out["b"])
}
