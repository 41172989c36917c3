package project

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/embedded-awesome/yakka/internal/blueprint"
	"github.com/embedded-awesome/yakka/internal/commands"
	"github.com/embedded-awesome/yakka/internal/config"
	oerrors "github.com/embedded-awesome/yakka/internal/errors"
	"github.com/embedded-awesome/yakka/internal/merge"
	"github.com/embedded-awesome/yakka/internal/registry"
	"github.com/embedded-awesome/yakka/internal/resolver"
	"github.com/embedded-awesome/yakka/internal/summary"
	"github.com/embedded-awesome/yakka/internal/targetdb"
	"github.com/embedded-awesome/yakka/internal/taskengine"
	"github.com/embedded-awesome/yakka/internal/templating"
)

// Request is one build invocation's token-classified input (§6): the
// initial component/feature/command sets, already split from the CLI
// token grammar by internal/cliargs.
type Request struct {
	Components []string
	Features   []string
	Commands   []string

	ProjectDir string
	YakkaHome  string

	// OutputDir is the resolved `<output>/<project>` root the summary
	// and persisted build artifacts are written under (§6).
	OutputDir string

	Registries *registry.Store

	Run config.RunOptions

	// DataFragments are already-parsed -d/--data and <project>.yakka
	// overrides, applied last over every component's own `data` (§4.3).
	DataFragments []map[string]any

	// PreviousData is the `data` field of the last persisted
	// bob_summary.json for this project, if any (§3's "previous
	// summary" lifecycle entity). Nil means there is no prior build to
	// diff against, so every data dependency is reported changed.
	PreviousData map[string]any
}

// Report is everything a CLI action needs to print and persist after a
// build (§6's persisted-state files, the cmdutil printers).
type Report struct {
	Result  *resolver.Result
	Summary *summary.Summary
	DB      *targetdb.DB
	Engine  *taskengine.Engine

	BlueprintMatches []cmdutilMatch
	Unmatched        []string

	TaskOutcomes []cmdutilOutcome
	BuildErr     error
}

// cmdutilMatch/cmdutilOutcome mirror internal/cmdutil's printer shapes
// without importing cmdutil here (cmdutil is a cmd-layer helper; project
// stays importable by both the CLI and a future config server without a
// cycle). The cmd layer converts these 1:1 into cmdutil's types.
type cmdutilMatch struct {
	Target string
	Ref    string
}

type cmdutilOutcome struct {
	Target  string
	Status  string
	Message string
}

// Build runs one full pipeline invocation (§2): resolve, assemble the
// summary, match blueprints, build the target database, and run the
// task engine, unless req.Commands is empty (resolve-only, e.g.
// `yakka list`-style queries).
func Build(ctx context.Context, req Request) (*Report, error) {
	store, err := LoadStore(req.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("loading project components: %w", err)
	}

	loader := &RegistryLoader{Registries: req.Registries, YakkaHome: req.YakkaHome, Store: store}
	preloadKnownComponents(req, loader)

	result, err := resolver.Resolve(store, req.Components, req.Features)
	if err != nil {
		return &Report{Result: result}, err
	}
	if result.Terminal != resolver.ProjectValid {
		return &Report{Result: result}, terminalError(result)
	}
	if len(result.ChoiceErrors) > 0 {
		return &Report{Result: result}, result.ChoiceErrors[0]
	}

	strategies := buildStrategies(result)

	sum, err := summary.Build(result, strategies, summary.Options{
		ProjectName: req.Run.ProjectName,
		OutputDir:   req.OutputDir,
		Data:        req.DataFragments,
	})
	if err != nil {
		return &Report{Result: result}, fmt.Errorf("building summary: %w", err)
	}

	renderer := templating.NewRenderer(sum)
	tmplCtx := templating.Context{
		Select:    buildSelect(result),
		Aggregate: buildAggregate(result, sum.Data),
	}

	db, err := targetdb.Build(req.Commands, result.Manifests, renderer, tmplCtx, loader.Load)
	if err != nil {
		return &Report{Result: result, Summary: sum}, fmt.Errorf("building target database: %w", err)
	}

	report := &Report{Result: result, Summary: sum, DB: db}
	collectMatches(report, db)

	if !req.Run.NoOutput && req.OutputDir != "" {
		if err := Persist(req.OutputDir, sum, db); err != nil {
			return report, fmt.Errorf("writing build artifacts: %w", err)
		}
	}

	if len(req.Commands) == 0 {
		return report, nil
	}

	dataMu := &sync.Mutex{}
	runner := newProcessRunner(sum, renderer, tmplCtx, dataMu)
	differ := newDataDiffer(req.PreviousData, sum.Data)

	workers := 0
	engine := taskengine.New(db, runner, differ, workers)
	report.Engine = engine

	buildErr := engine.Run(ctx, req.Commands)
	report.BuildErr = buildErr
	collectOutcomes(report, db, req.Commands, buildErr)

	return report, buildErr
}

// preloadKnownComponents resolves every initially-requested component id
// through the registry loader up front, so the resolver's own
// drainComponents loop finds it already parsed into the store rather
// than reporting it unknown.
func preloadKnownComponents(req Request, loader *RegistryLoader) {
	for _, id := range req.Components {
		loader.Load(id)
	}
}

func buildStrategies(result *resolver.Result) merge.StrategyTable {
	fragments := make([]map[string]any, 0, len(result.Manifests)*2)
	for _, m := range result.Manifests {
		if schema, ok := m.Raw["schema"].(map[string]any); ok {
			fragments = append(fragments, schema)
		}
		if schema, ok := m.Raw["data_schema"].(map[string]any); ok {
			fragments = append(fragments, schema)
		}
	}
	return merge.BuildStrategyTable(fragments...)
}

func terminalError(result *resolver.Result) error {
	switch result.Terminal {
	case resolver.ProjectHasUnknownComponents:
		return oerrors.NewUnknownComponentError(firstOf(result.Unknown))
	case resolver.ProjectHasUnresolvedRequirements:
		return oerrors.NewUnresolvedRequirementsError(keysOf(result.UnprovidedFeatures))
	default:
		return fmt.Errorf("project is not valid: terminal state %d", result.Terminal)
	}
}

func firstOf(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func keysOf(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func collectMatches(report *Report, db *targetdb.DB) {
	for _, target := range db.Targets() {
		matches := db.Matches(target)
		if len(matches) == 0 {
			report.Unmatched = append(report.Unmatched, target)
			continue
		}
		for _, m := range matches {
			report.BlueprintMatches = append(report.BlueprintMatches, cmdutilMatch{
				Target: target,
				Ref:    m.OwnerID + ":" + m.Pattern,
			})
		}
	}
}

func collectOutcomes(report *Report, db *targetdb.DB, targets []string, buildErr error) {
	status := "built"
	if buildErr != nil {
		status = "failed"
	}
	for _, target := range targets {
		if len(db.Matches(target)) == 0 {
			report.TaskOutcomes = append(report.TaskOutcomes, cmdutilOutcome{Target: target, Status: "unmatched"})
			continue
		}
		report.TaskOutcomes = append(report.TaskOutcomes, cmdutilOutcome{Target: target, Status: status})
	}
}

func newProcessRunner(sum *summary.Summary, renderer *templating.Renderer, tmplCtx templating.Context, dataMu *sync.Mutex) taskengine.ProcessRunner {
	tools := sum.Tools
	return func(ctx context.Context, match blueprint.Match) (int, error) {
		steps := commands.ParseProcess(match.Process)
		cctx := &commands.Context{
			Data:        sum.Data,
			DataMu:      dataMu,
			Tools:       tools,
			Renderer:    renderer,
			TemplateCtx: matchTemplateCtx(tmplCtx, match),
			WorkDir:     match.ParentPath,
		}
		result, err := commands.Run(cctx, steps)
		return result.Retcode, err
	}
}

func matchTemplateCtx(base templating.Context, match blueprint.Match) templating.Context {
	ctx := base
	ctx.Captures = match.RegexMatches
	ctx.CurDir = match.ParentPath
	return ctx
}

// newDataDiffer reports whether a `:/data/...` target's value changed
// since the previous build (§3, §4.6 step 2). With no previous summary
// (first run, or --refresh discarded it) every pointer is reported
// changed. Values are compared through their JSON encoding rather than
// with reflect.DeepEqual, since previous is decoded from persisted
// JSON (ints surface as float64) while current comes straight from the
// live summary tree.
func newDataDiffer(previous, current map[string]any) taskengine.DataDiffer {
	return func(pointer string) bool {
		if previous == nil {
			return true
		}
		segs := pointerSegments(strings.TrimPrefix(pointer, dataTargetPrefix))

		prevValue, prevOK := lookupPointer(previous, segs)
		curValue, curOK := lookupPointer(current, segs)
		if prevOK != curOK {
			return true
		}
		if !prevOK {
			return false
		}
		return !jsonEqual(prevValue, curValue)
	}
}

// dataTargetPrefix marks a task-engine target as a data dependency
// (§3), mirroring internal/commands' own `:/data/` save destination.
const dataTargetPrefix = ":/data/"

func jsonEqual(a, b any) bool {
	aBytes, errA := json.Marshal(a)
	bBytes, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(aBytes, bBytes)
}
