package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store"
)

// Store is an in-memory implementation of store.Store for tests and
// one-shot command line runs.
type Store struct {
	mu      sync.RWMutex
	runs    map[string]store.Run
	results map[string][]store.Result
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:    make(map[string]store.Run),
		results: make(map[string][]store.Result),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// CreateRun records a new run. IDs must be unique.
func (s *Store) CreateRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[r.ID]; ok {
		return fmt.Errorf("run %s already exists", r.ID)
	}
	s.runs[r.ID] = r
	return nil
}

// FinishRun stamps the run with its end time and counts.
func (s *Store) FinishRun(ctx context.Context, id string, finishedAt time.Time, answered, failed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[id]
	if !ok {
		return fmt.Errorf("%w: run %s", internalerr.ErrNotFound, id)
	}
	r.FinishedAt = finishedAt
	r.Answered = answered
	r.Failed = failed
	s.runs[id] = r
	return nil
}

// GetRun returns the run with the given ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("%w: run %s", internalerr.ErrNotFound, id)
	}
	return r, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AppendResults adds results to an existing run.
func (s *Store) AppendResults(ctx context.Context, runID string, results []store.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[runID]; !ok {
		return fmt.Errorf("%w: run %s", internalerr.ErrNotFound, runID)
	}
	s.results[runID] = append(s.results[runID], results...)
	return nil
}

// Results returns the results of a run ordered by Seq.
func (s *Store) Results(ctx context.Context, runID string) ([]store.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.runs[runID]; !ok {
		return nil, fmt.Errorf("%w: run %s", internalerr.ErrNotFound, runID)
	}
	out := append([]store.Result(nil), s.results[runID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

var _ store.Store = (*Store)(nil)
