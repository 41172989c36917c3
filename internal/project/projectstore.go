package project

import (
	"fmt"
	"sort"
	"sync"

	"github.com/embedded-awesome/yakka/internal/httpserver"
	"github.com/embedded-awesome/yakka/internal/merge"
)

// MemoryStore keeps the most recent Report per project id in memory for
// the config server (§6), letting `yakka serve` answer queries against
// whatever builds have run in this process without re-reading disk.
type MemoryStore struct {
	mu       sync.RWMutex
	reports  map[string]*Report
	rebuild  map[string]func(data map[string]any) (*Report, error)
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: map[string]*Report{},
		rebuild: map[string]func(data map[string]any) (*Report, error){},
	}
}

// Put records a project's latest Report, along with the rebuild callback
// MergeData uses to re-run the pipeline after new data arrives.
func (s *MemoryStore) Put(id string, report *Report, rebuild func(data map[string]any) (*Report, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[id] = report
	s.rebuild[id] = rebuild
}

// Get implements httpserver.ProjectStore.
func (s *MemoryStore) Get(id string) (*httpserver.ProjectState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, false
	}
	return &httpserver.ProjectState{Summary: report.Summary}, true
}

// List implements httpserver.ProjectStore.
func (s *MemoryStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.reports))
	for id := range s.reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MergeData implements httpserver.ProjectStore: it deep-merges fragment
// into the project's data tree (§4.3's default merge rule) and re-runs
// the build so the summary and any data-dependent targets stay current.
func (s *MemoryStore) MergeData(id string, fragment map[string]any) error {
	s.mu.Lock()
	report, ok := s.reports[id]
	rebuild := s.rebuild[id]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown project: %s", id)
	}

	merged := report.Summary.Data
	for key, value := range fragment {
		result, err := merge.Merge(merged[key], value, key, nil)
		if err != nil {
			return fmt.Errorf("merging data.%s: %w", key, err)
		}
		if merged == nil {
			merged = map[string]any{}
		}
		merged[key] = result
	}

	next, err := rebuild(merged)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.reports[id] = next
	s.mu.Unlock()
	return nil
}
