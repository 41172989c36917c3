package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedded-awesome/yakka/internal/config"
)

func writeComponent(t *testing.T, dir, id, yaml string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".yaml"), []byte(yaml), 0o644))
}

func TestBuild_ResolveOnlyWithNoCommands(t *testing.T) {
	projectDir := t.TempDir()
	componentsDir := filepath.Join(projectDir, ComponentsDirName)
	require.NoError(t, os.MkdirAll(componentsDir, 0o755))
	writeComponent(t, componentsDir, "app", "provides: {features: [net]}\n")

	report, err := Build(context.Background(), Request{
		Components: []string{"app"},
		ProjectDir: projectDir,
		Run:        config.RunOptions{NoOutput: true},
	})
	require.NoError(t, err)
	require.NotNil(t, report.Summary)
	assert.Contains(t, report.Summary.Components, "app")
	assert.Nil(t, report.Engine)
	assert.Empty(t, report.TaskOutcomes)
}

func TestBuild_UnknownComponentFails(t *testing.T) {
	projectDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(projectDir, ComponentsDirName), 0o755))

	report, err := Build(context.Background(), Request{
		Components: []string{"ghost"},
		ProjectDir: projectDir,
		Run:        config.RunOptions{NoOutput: true},
	})
	assert.Error(t, err)
	require.NotNil(t, report)
	assert.NotEqual(t, "PROJECT_VALID", string(report.Result.Terminal))
}

func TestBuild_UnresolvedRequirementFails(t *testing.T) {
	projectDir := t.TempDir()
	componentsDir := filepath.Join(projectDir, ComponentsDirName)
	require.NoError(t, os.MkdirAll(componentsDir, 0o755))
	writeComponent(t, componentsDir, "app", "requires: {features: [missing_feature]}\n")

	_, err := Build(context.Background(), Request{
		Components: []string{"app"},
		ProjectDir: projectDir,
		Run:        config.RunOptions{NoOutput: true},
	})
	assert.Error(t, err)
}

func TestBuild_RunsProcessAndPersistsArtifacts(t *testing.T) {
	projectDir := t.TempDir()
	componentsDir := filepath.Join(projectDir, ComponentsDirName)
	require.NoError(t, os.MkdirAll(componentsDir, 0o755))
	writeComponent(t, componentsDir, "app", `
provides: {features: [net]}
blueprints:
  "build/app":
    process:
      - template: "built app"
      - save: "out.txt"
`)

	outputDir := filepath.Join(projectDir, "output")
	report, err := Build(context.Background(), Request{
		Components: []string{"app"},
		Commands:   []string{"build/app"},
		ProjectDir: projectDir,
		OutputDir:  outputDir,
	})
	require.NoError(t, err)
	require.NotNil(t, report.Engine)
	assert.Len(t, report.TaskOutcomes, 1)
	assert.Equal(t, "built", report.TaskOutcomes[0].Status)

	for _, name := range []string{"bob_summary.json", "bob_summary.yaml", "blueprints.json"} {
		_, statErr := os.Stat(filepath.Join(outputDir, name))
		assert.NoErrorf(t, statErr, "expected %s", name)
	}

	// save's destination is anchored to the owning manifest's directory
	// (curdir()), not the build's output directory.
	data, err := os.ReadFile(filepath.Join(componentsDir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "built app", string(data))
}

func TestBuild_UnmatchedTargetReportedAsUnmatched(t *testing.T) {
	projectDir := t.TempDir()
	componentsDir := filepath.Join(projectDir, ComponentsDirName)
	require.NoError(t, os.MkdirAll(componentsDir, 0o755))
	writeComponent(t, componentsDir, "app", "provides: {features: [net]}\n")

	report, err := Build(context.Background(), Request{
		Components: []string{"app"},
		Commands:   []string{"no/such/target"},
		ProjectDir: projectDir,
		Run:        config.RunOptions{NoOutput: true},
	})
	require.NoError(t, err)
	require.Len(t, report.TaskOutcomes, 1)
	assert.Equal(t, "unmatched", report.TaskOutcomes[0].Status)
	assert.Contains(t, report.Unmatched, "no/such/target")
}

func TestNewDataDiffer_NoPreviousReportsEveryPointerChanged(t *testing.T) {
	differ := newDataDiffer(nil, map[string]any{"toolchain": map[string]any{"arch": "arm"}})
	assert.True(t, differ(":/data/toolchain/arch"))
}

func TestNewDataDiffer_UnchangedValueReportsNotChanged(t *testing.T) {
	previous := map[string]any{"toolchain": map[string]any{"arch": "arm"}}
	current := map[string]any{"toolchain": map[string]any{"arch": "arm"}}
	differ := newDataDiffer(previous, current)
	assert.False(t, differ(":/data/toolchain/arch"))
}

func TestNewDataDiffer_ChangedValueReportsChanged(t *testing.T) {
	previous := map[string]any{"toolchain": map[string]any{"arch": "arm"}}
	current := map[string]any{"toolchain": map[string]any{"arch": "x86"}}
	differ := newDataDiffer(previous, current)
	assert.True(t, differ(":/data/toolchain/arch"))
}

func TestNewDataDiffer_NumericTypeMismatchIsNotAFalsePositive(t *testing.T) {
	// previous comes back from JSON as float64; current may hold an
	// int straight out of YAML decoding. Equal values must compare equal.
	previous := map[string]any{"count": float64(3)}
	current := map[string]any{"count": 3}
	differ := newDataDiffer(previous, current)
	assert.False(t, differ(":/data/count"))
}

func TestNewDataDiffer_NewlyAddedPointerReportsChanged(t *testing.T) {
	previous := map[string]any{}
	current := map[string]any{"toolchain": map[string]any{"arch": "arm"}}
	differ := newDataDiffer(previous, current)
	assert.True(t, differ(":/data/toolchain/arch"))
}

func TestBuild_ReloadedPreviousSummaryFeedsDataDiffer(t *testing.T) {
	projectDir := t.TempDir()
	componentsDir := filepath.Join(projectDir, ComponentsDirName)
	require.NoError(t, os.MkdirAll(componentsDir, 0o755))
	writeComponent(t, componentsDir, "app", `
provides: {features: [net]}
data: {toolchain: {arch: arm}}
blueprints:
  ":/data/toolchain/arch":
    process:
      - echo: "noted"
`)

	outputDir := filepath.Join(projectDir, "output")
	_, err := Build(context.Background(), Request{
		Components: []string{"app"},
		Commands:   []string{":/data/toolchain/arch"},
		ProjectDir: projectDir,
		OutputDir:  outputDir,
	})
	require.NoError(t, err)

	previousData, err := LoadPreviousSummaryData(outputDir)
	require.NoError(t, err)
	toolchain, ok := previousData["toolchain"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "arm", toolchain["arch"])

	second, err := Build(context.Background(), Request{
		Components:   []string{"app"},
		Commands:     []string{":/data/toolchain/arch"},
		ProjectDir:   projectDir,
		OutputDir:    outputDir,
		PreviousData: previousData,
	})
	require.NoError(t, err)
	require.Len(t, second.TaskOutcomes, 1)
	assert.Equal(t, "built", second.TaskOutcomes[0].Status)
}

func TestFirstOf_EmptyReturnsEmptyString(t *testing.T) {
	assert.Equal(t, "", firstOf(nil))
	assert.Equal(t, "a", firstOf([]string{"a", "b"}))
}

func TestKeysOf_ReturnsAllKeys(t *testing.T) {
	keys := keysOf(map[string]bool{"a": true, "b": true})
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}
