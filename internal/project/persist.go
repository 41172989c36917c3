package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/embedded-awesome/yakka/internal/blueprint"
	"github.com/embedded-awesome/yakka/internal/summary"
)

// Persist writes the §6 persisted-state files under outputDir: the JSON
// and YAML project summary twins, the ordered template contributions,
// and the serialised blueprint database.
func Persist(outputDir string, sum *summary.Summary, db DB) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(outputDir, "bob_summary.json"), sum); err != nil {
		return err
	}
	if err := writeYAML(filepath.Join(outputDir, "bob_summary.yaml"), sum); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outputDir, "template_contributions.json"), sum.TemplateContributions); err != nil {
		return err
	}
	if db != nil {
		if err := writeJSON(filepath.Join(outputDir, "blueprints.json"), exportDB(db)); err != nil {
			return err
		}
	}
	return nil
}

// LoadPreviousSummaryData reads back the `data` field of a previously
// persisted bob_summary.json under outputDir (§3's "previous summary"),
// for newDataDiffer to compare against. A missing file means there is
// no prior build yet, not an error: the returned map is nil.
func LoadPreviousSummaryData(outputDir string) (map[string]any, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, "bob_summary.json"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var previous struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(data, &previous); err != nil {
		return nil, fmt.Errorf("parsing previous summary: %w", err)
	}
	return previous.Data, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DB is the subset of targetdb.DB's exported surface Persist needs,
// kept narrow so this package doesn't have to import targetdb just to
// serialise it; the build pipeline passes its *targetdb.DB in directly
// since that type already satisfies this interface.
type DB interface {
	Targets() []string
	Matches(target string) []blueprint.Match
}

func exportDB(db DB) map[string][]blueprint.Match {
	out := map[string][]blueprint.Match{}
	for _, t := range db.Targets() {
		out[t] = db.Matches(t)
	}
	return out
}
