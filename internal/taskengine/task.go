// Package taskengine implements the construction-task DAG, worker pool
// and freshness semantics of C7 (§4.6).
package taskengine

import (
	"time"

	"github.com/embedded-awesome/yakka/internal/blueprint"
)

// Task is one construction task: a (target, blueprint-match) pair, or a
// single leaf for a target with no match (§3).
type Task struct {
	Target string
	Match  *blueprint.Match // nil for a leaf task

	Predecessors []*Task

	done chan struct{}

	// lastModified is set once the task finishes: mtime(target) if the
	// task rebuilt or found the file fresh, or a sentinel zero/far-future
	// value per the leaf and data-dependency rules of §4.6 step 2.
	lastModified time.Time
	// ran records whether this task actually executed its blueprint's
	// process (vs. finding the target already fresh).
	ran bool
	err error
}

func newTask(target string, match *blueprint.Match) *Task {
	return &Task{
		Target: target,
		Match:  match,
		done:   make(chan struct{}),
	}
}

// Group returns the task's progress group, "Processing" by default.
func (t *Task) Group() string {
	if t.Match == nil {
		return "Processing"
	}
	return t.Match.GroupOrDefault()
}

// LastModified reports the task's finishing timestamp, valid only after
// the task has completed (its done channel is closed).
func (t *Task) LastModified() time.Time {
	return t.lastModified
}

// Ran reports whether the task executed its blueprint's process.
func (t *Task) Ran() bool {
	return t.ran
}

// Err reports the task's failure, if any.
func (t *Task) Err() error {
	return t.err
}

// isDataDependency reports whether a target names a data-dependency
// pseudo-target (§3: prefixed with the data-dependency marker).
func isDataDependency(target string) bool {
	return len(target) > 0 && target[0] == ':'
}
