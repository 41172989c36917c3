package taskengine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedded-awesome/yakka/internal/blueprint"
	"github.com/embedded-awesome/yakka/internal/manifest"
	"github.com/embedded-awesome/yakka/internal/targetdb"
	"github.com/embedded-awesome/yakka/internal/templating"
)

func buildDB(t *testing.T, yamlSource string, commands []string) *targetdb.DB {
	t.Helper()
	m, err := manifest.Parse([]byte(yamlSource), "gcc", "gcc.yaml")
	require.NoError(t, err)
	manifests := map[string]*manifest.Manifest{"gcc": m}
	db, err := targetdb.Build(commands, manifests, templating.NewRenderer(nil), templating.Context{}, nil)
	require.NoError(t, err)
	return db
}

func TestEngine_RunsMissingTargetThroughRunner(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "app.o")
	src := filepath.Join(dir, "app.c")
	require.NoError(t, os.WriteFile(src, []byte("int main(){}"), 0o644))

	yamlSrc := fmt.Sprintf("blueprints:\n  %q:\n    depends: [%q]\n    process:\n      - step: compile\n", obj, src)
	db := buildDB(t, yamlSrc, []string{obj})

	var ran bool
	runner := func(_ context.Context, match blueprint.Match) (int, error) {
		ran = true
		require.NoError(t, os.WriteFile(obj, []byte("compiled"), 0o644))
		return 0, nil
	}

	e := New(db, runner, nil, 0)
	err := e.Run(context.Background(), []string{obj})
	require.NoError(t, err)
	assert.True(t, ran)

	_, statErr := os.Stat(obj)
	assert.NoError(t, statErr)
}

func TestEngine_SkipsRebuildWhenTargetIsFresh(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.c")
	obj := filepath.Join(dir, "app.o")
	require.NoError(t, os.WriteFile(src, []byte("old"), 0o644))
	srcTime := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(src, srcTime, srcTime))

	require.NoError(t, os.WriteFile(obj, []byte("built"), 0o644))
	objTime := time.Now()
	require.NoError(t, os.Chtimes(obj, objTime, objTime))

	yamlSrc := fmt.Sprintf("blueprints:\n  %q:\n    depends: [%q]\n    process:\n      - step: compile\n", obj, src)
	db := buildDB(t, yamlSrc, []string{obj})

	var ran bool
	runner := func(_ context.Context, match blueprint.Match) (int, error) {
		ran = true
		return 0, nil
	}

	e := New(db, runner, nil, 0)
	require.NoError(t, e.Run(context.Background(), []string{obj}))
	assert.False(t, ran, "a target newer than its only predecessor must not be rebuilt")
}

func TestEngine_RunnerFailureAbortsAndIsReported(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "app.o")

	yamlSrc := fmt.Sprintf("blueprints:\n  %q:\n    process:\n      - step: compile\n", obj)
	db := buildDB(t, yamlSrc, []string{obj})

	runner := func(_ context.Context, match blueprint.Match) (int, error) {
		return -1, nil
	}

	e := New(db, runner, nil, 0)
	err := e.Run(context.Background(), []string{obj})
	assert.Error(t, err)
	assert.True(t, e.Aborted())
}

func TestEngine_GroupsTrackTaskCounts(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "app.o")

	yamlSrc := fmt.Sprintf("blueprints:\n  %q:\n    group: compile\n", obj)
	db := buildDB(t, yamlSrc, []string{obj})

	runner := func(_ context.Context, match blueprint.Match) (int, error) {
		return 0, nil
	}

	e := New(db, runner, nil, 0)
	require.NoError(t, e.Run(context.Background(), []string{obj}))

	snapshot := e.Groups().Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "compile", snapshot[0].Name)
	assert.Equal(t, int64(1), snapshot[0].Total)
	assert.Equal(t, int64(1), snapshot[0].Current)
}

func TestNew_WorkerCountIsCappedAtMax(t *testing.T) {
	e := New(nil, nil, nil, 1000)
	assert.Equal(t, maxWorkers, e.workers)
}

func TestNew_NonPositiveWorkersDefaultsToGOMAXPROCS(t *testing.T) {
	e := New(nil, nil, nil, 0)
	assert.Greater(t, e.workers, 0)
}
