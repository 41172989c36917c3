package taskengine

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Group tracks a named bucket of construction tasks for progress
// reporting (§4.6 "Progress"): atomic (total, current) counters a UI
// adapter polls at a fixed cadence.
type Group struct {
	Name    string
	total   int64
	current int64
}

// Total reports the group's task count.
func (g *Group) Total() int64 { return atomic.LoadInt64(&g.total) }

// Current reports how many of the group's tasks have completed.
func (g *Group) Current() int64 { return atomic.LoadInt64(&g.current) }

func (g *Group) addTotal(n int64)      { atomic.AddInt64(&g.total, n) }
func (g *Group) markOneComplete() int64 { return atomic.AddInt64(&g.current, 1) }

// Groups is the registry of progress groups for one build run.
type Groups struct {
	mu     sync.Mutex
	byName map[string]*Group
}

// NewGroups creates an empty group registry.
func NewGroups() *Groups {
	return &Groups{byName: map[string]*Group{}}
}

// Reserve registers one task against a named group, creating the group
// on first use.
func (g *Groups) Reserve(name string) *Group {
	group := g.group(name)
	group.addTotal(1)
	return group
}

// group returns the named group, creating it on first use, without
// changing its total. Used to look up a group a task already reserved.
func (g *Groups) group(name string) *Group {
	g.mu.Lock()
	defer g.mu.Unlock()

	group, ok := g.byName[name]
	if !ok {
		group = &Group{Name: name}
		g.byName[name] = group
	}
	return group
}

// Snapshot returns every group's (name, current, total), sorted by name,
// for a UI adapter to render.
func (g *Groups) Snapshot() []GroupStatus {
	g.mu.Lock()
	names := make([]string, 0, len(g.byName))
	for name := range g.byName {
		names = append(names, name)
	}
	groups := make(map[string]*Group, len(g.byName))
	for k, v := range g.byName {
		groups[k] = v
	}
	g.mu.Unlock()

	sort.Strings(names)
	out := make([]GroupStatus, 0, len(names))
	for _, name := range names {
		group := groups[name]
		out = append(out, GroupStatus{Name: name, Current: group.Current(), Total: group.Total()})
	}
	return out
}

// GroupStatus is a point-in-time snapshot of one group's counters.
type GroupStatus struct {
	Name    string
	Current int64
	Total   int64
}
