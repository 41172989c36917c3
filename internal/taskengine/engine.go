package taskengine

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/embedded-awesome/yakka/internal/blueprint"
	"github.com/embedded-awesome/yakka/internal/targetdb"
)

// maxWorkers bounds the pool size regardless of host parallelism (§4.6).
const maxWorkers = 32

// ProcessRunner executes a matched blueprint's `process` list, returning
// the task's negative-retcode-on-failure per §4.7. A nil error with a
// negative code is a task failure; any Go error is also a task failure.
type ProcessRunner func(ctx context.Context, match blueprint.Match) (retcode int, err error)

// Engine builds and executes the construction-task DAG (§4.6) over a
// target database's closure.
type Engine struct {
	db      *targetdb.DB
	runner  ProcessRunner
	differ  DataDiffer
	workers int

	groups *Groups
	abort  atomic.Bool

	todo map[string][]*Task
}

// New creates a task engine bound to a target database. workers <= 0
// defaults to min(GOMAXPROCS, 32).
func New(db *targetdb.DB, runner ProcessRunner, differ DataDiffer, workers int) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return &Engine{
		db:      db,
		runner:  runner,
		differ:  differ,
		workers: workers,
		groups:  NewGroups(),
		todo:    map[string][]*Task{},
	}
}

// Groups exposes the progress-group registry for a UI adapter to poll.
func (e *Engine) Groups() *Groups {
	return e.groups
}

// Aborted reports whether the build has been cancelled by a prior task
// failure (§5 "Cancellation").
func (e *Engine) Aborted() bool {
	return e.abort.Load()
}

// Run builds the task graph for the given commands and executes it to
// completion, returning the first task error encountered (§5: all
// scheduled tasks still run to completion; only new work is skipped
// after abort).
func (e *Engine) Run(ctx context.Context, commands []string) error {
	var all []*Task
	seen := map[*Task]bool{}
	var walk func(t *Task)
	walk = func(t *Task) {
		if seen[t] {
			return
		}
		seen[t] = true
		for _, p := range t.Predecessors {
			walk(p)
		}
		// Predecessors are started before their dependents, so a worker
		// slot is never held by a task waiting on one not yet started.
		all = append(all, t)
	}

	sink := newTask("", nil)
	for _, command := range commands {
		tasks := e.buildTasks(command)
		sink.Predecessors = append(sink.Predecessors, tasks...)
	}
	walk(sink)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, t := range all {
		if t == sink {
			continue
		}
		task := t
		g.Go(func() error {
			return e.execute(gctx, task)
		})
	}

	return g.Wait()
}

// buildTasks is create_tasks(t, parent) from §4.6, memoised per target.
func (e *Engine) buildTasks(target string) []*Task {
	if existing, ok := e.todo[target]; ok {
		return existing
	}

	matches := e.db.Matches(target)
	var tasks []*Task

	if len(matches) == 0 {
		t := newTask(target, nil)
		e.groups.Reserve(t.Group())
		tasks = []*Task{t}
	} else {
		for i := range matches {
			m := matches[i]
			t := newTask(target, &m)
			e.groups.Reserve(t.Group())
			for _, dep := range m.Dependencies {
				t.Predecessors = append(t.Predecessors, e.buildTasks(dep.Name)...)
			}
			tasks = append(tasks, t)
		}
	}

	e.todo[target] = tasks
	return tasks
}

// execute runs one task's work function (§4.6 steps 2-3): it waits for
// every predecessor, then decides freshness and optionally reruns the
// blueprint's process.
func (e *Engine) execute(ctx context.Context, t *Task) error {
	for _, p := range t.Predecessors {
		select {
		case <-p.done:
		case <-ctx.Done():
			close(t.done)
			return ctx.Err()
		}
	}
	defer close(t.done)
	defer e.groups.group(t.Group()).markOneComplete()

	if e.abort.Load() {
		t.lastModified = farPast
		return nil
	}

	if t.Match == nil {
		t.lastModified = leafTimestamp(t.Target, e.differ, statMtime)
		return nil
	}

	existingMtime, exists := statMtime(t.Target)
	if exists {
		t.lastModified = existingMtime
	}

	predMax := maxOf(predecessorTimestamps(t.Predecessors))

	shouldRun := false
	switch {
	case len(t.Predecessors) == 0 && t.Match.Process != nil:
		shouldRun = !exists
	case t.Match.Process != nil:
		shouldRun = !exists || predMax.After(t.lastModified)
	}

	if !shouldRun {
		if !exists {
			t.lastModified = farPast
		}
		return nil
	}

	retcode, err := e.runProcess(ctx, *t.Match)
	t.ran = true
	if err != nil || retcode < 0 {
		t.err = firstNonNil(err, fmt.Errorf("task %q: blueprint returned code %d", t.Target, retcode))
		e.abort.Store(true)
		return t.err
	}
	t.lastModified = time.Now()
	return nil
}

func (e *Engine) runProcess(ctx context.Context, match blueprint.Match) (int, error) {
	if e.runner == nil {
		return 0, nil
	}
	return e.runner(ctx, match)
}

func predecessorTimestamps(preds []*Task) []time.Time {
	out := make([]time.Time, len(preds))
	for i, p := range preds {
		out[i] = p.lastModified
	}
	return out
}

func statMtime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func firstNonNil(err error, fallback error) error {
	if err != nil {
		return err
	}
	return fallback
}
