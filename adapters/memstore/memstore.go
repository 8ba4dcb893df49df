// Package memstore is the in-memory RunStore used by the CLI and the test
// suite. Writes are insert-once: a run identifier can never be overwritten,
// which keeps stored batch results immutable.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"par2/domain/analysis"
	"par2/domain/core"
	"par2/ports"
)

// Store is a map-backed RunStore safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	runs map[core.RunID]analysis.BatchResult
}

var _ ports.RunStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{runs: make(map[core.RunID]analysis.BatchResult)}
}

// SaveRun stores a completed batch result. Fails with ErrRunExists when the
// run identifier is already present.
func (s *Store) SaveRun(_ context.Context, result analysis.BatchResult) error {
	runID := result.Manifest.RunID
	if runID == "" {
		return fmt.Errorf("memstore: run ID must be set")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[runID]; ok {
		return fmt.Errorf("memstore: %s: %w", runID, core.ErrRunExists)
	}
	s.runs[runID] = result
	return nil
}

// GetRun returns a copy of the stored batch result.
func (s *Store) GetRun(_ context.Context, runID core.RunID) (*analysis.BatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.runs[runID]
	if !ok {
		return nil, fmt.Errorf("memstore: %s: %w", runID, core.ErrRunNotFound)
	}
	return &result, nil
}

// ListRuns returns the manifests for one dataset, oldest run first.
func (s *Store) ListRuns(_ context.Context, datasetID core.DatasetID) ([]analysis.BatchManifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	manifests := make([]analysis.BatchManifest, 0)
	for _, result := range s.runs {
		if result.Manifest.DatasetID == datasetID {
			manifests = append(manifests, result.Manifest)
		}
	}
	// UUID v7 run IDs sort in creation order.
	sort.Slice(manifests, func(a, b int) bool {
		return manifests[a].RunID < manifests[b].RunID
	})
	return manifests, nil
}

// DeleteRun removes a stored run.
func (s *Store) DeleteRun(_ context.Context, runID core.RunID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[runID]; !ok {
		return fmt.Errorf("memstore: %s: %w", runID, core.ErrRunNotFound)
	}
	delete(s.runs, runID)
	return nil
}
