package cmdutil

import (
	"errors"
	"fmt"

	oerrors "github.com/embedded-awesome/yakka/internal/errors"
	"github.com/embedded-awesome/yakka/internal/output"
)

// PrintResolverError prints a resolver/build error in a user-friendly
// format. When the error is an *errors.DetailError, it prints the
// structured multi-line detail text; otherwise it falls back to the
// standard key-value log format.
func PrintResolverError(msg string, err error) {
	var detailErr *oerrors.DetailError
	if errors.As(err, &detailErr) {
		output.Error(fmt.Sprintf("%s: %s", msg, detailErr.Type))
		output.Details(detailErr.Error())
		return
	}
	output.Error(msg, "error", err)
}

// BlueprintMatch is the compact shape cmdutil needs to print a matched
// blueprint line, decoupled from the internal/blueprint package's own
// richer match type to avoid an import cycle (cmdutil is imported by
// the action commands, which also import internal/blueprint).
type BlueprintMatch struct {
	Target string
	Ref    string
}

// PrintBlueprintMatches writes compact blueprint match output (always
// shown). Format: target <- blueprint - ref
func PrintBlueprintMatches(projectName string, matches []BlueprintMatch, unmatched []string) {
	log := output.TargetLogger(projectName)

	for _, m := range matches {
		log.Info(output.FormatBlueprintMatch(m.Target, m.Ref))
	}
	for _, t := range unmatched {
		log.Warn(output.FormatBlueprintUnmatched(t))
	}
}

// TaskOutcome is the compact shape cmdutil needs to print one
// construction task's outcome in a post-build summary.
type TaskOutcome struct {
	Target   string
	Status   string
	Duration string
	Message  string
}

// PrintTaskOutcomes prints a post-build summary table of construction
// task outcomes (built/unchanged/stale/failed), one row per target.
func PrintTaskOutcomes(outcomes []TaskOutcome) {
	rows := make([]output.TargetRow, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, output.TargetRow{
			Target:   o.Target,
			Status:   o.Status,
			Duration: o.Duration,
			Message:  o.Message,
		})
	}
	output.Println(output.RenderTargetTable(rows))
}

// PrintTaskFailures prints the set of failed-task messages after a build
// run, one line per failure.
func PrintTaskFailures(failures []TaskOutcome) {
	if len(failures) == 0 {
		return
	}
	output.Error("build completed with task failures")
	for _, f := range failures {
		output.Println(output.FormatFailure(fmt.Sprintf("%s: %s", f.Target, f.Message)))
	}
}
