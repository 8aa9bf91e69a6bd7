package store

import (
	"context"
	"time"
)

// Store persists batch runs and the answer of every query in them
type Store interface {
	Close() error

	// Runs
	CreateRun(ctx context.Context, r Run) error
	FinishRun(ctx context.Context, id string, finishedAt time.Time, answered, failed int) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Results
	AppendResults(ctx context.Context, runID string, results []Result) error
	Results(ctx context.Context, runID string) ([]Result, error)
}

// Run is one execution of a batch of queries against a network
type Run struct {
	ID         string
	Network    string
	Source     string // batch file or "cli"
	Queries    int
	Answered   int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time // zero while the run is in progress
}

// Finished reports whether FinishRun was called for the run
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Result is the stored outcome of one query
type Result struct {
	Seq             int // position in the batch, from 0
	Query           string
	Algorithm       int
	Probability     float64
	Additions       int
	Multiplications int
	Error           string // set instead of the numbers when the query failed
}
