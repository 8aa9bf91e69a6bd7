// Package storetest checks a store.Store implementation against the
// behavior every backend must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store"
)

// Run exercises open, which must return an empty store
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("RunLifecycle", func(t *testing.T) { testRunLifecycle(t, open(t)) })
	t.Run("ResultsOrdered", func(t *testing.T) { testResultsOrdered(t, open(t)) })
	t.Run("ListRunsNewestFirst", func(t *testing.T) { testListRuns(t, open(t)) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, open(t)) })
}

func testRunLifecycle(t *testing.T, st store.Store) {
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	run := store.Run{ID: "01HZRUN1", Network: "alarm", Source: "input.txt", Queries: 3, StartedAt: started}
	require.NoError(t, st.CreateRun(ctx, run))
	assert.Error(t, st.CreateRun(ctx, run), "duplicate run id")

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.False(t, got.Finished())
	assert.Equal(t, "alarm", got.Network)
	assert.Equal(t, "input.txt", got.Source)
	assert.Equal(t, 3, got.Queries)
	assert.True(t, started.Equal(got.StartedAt))

	finished := started.Add(1500 * time.Millisecond)
	require.NoError(t, st.FinishRun(ctx, run.ID, finished, 2, 1))

	got, err = st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.True(t, got.Finished())
	assert.True(t, finished.Equal(got.FinishedAt))
	assert.Equal(t, 2, got.Answered)
	assert.Equal(t, 1, got.Failed)
}

func testResultsOrdered(t *testing.T, st store.Store) {
	ctx := context.Background()
	require.NoError(t, st.CreateRun(ctx, store.Run{ID: "r", Network: "chain", StartedAt: time.Now()}))

	require.NoError(t, st.AppendResults(ctx, "r", []store.Result{
		{Seq: 2, Query: "P(A=T)", Algorithm: 2, Probability: 0.3},
		{Seq: 0, Query: "P(C=T|A=T)", Algorithm: 1, Probability: 0.76, Additions: 3, Multiplications: 8},
	}))
	require.NoError(t, st.AppendResults(ctx, "r", []store.Result{
		{Seq: 1, Query: "P(Z=T)", Algorithm: 3, Error: "unknown variable"},
	}))

	got, err := st.Results(ctx, "r")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Seq, got[1].Seq, got[2].Seq})
	assert.Equal(t, store.Result{Seq: 0, Query: "P(C=T|A=T)", Algorithm: 1, Probability: 0.76, Additions: 3, Multiplications: 8}, got[0])
	assert.Equal(t, "unknown variable", got[1].Error)
	assert.Empty(t, got[2].Error)
}

func testListRuns(t *testing.T, st store.Store) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, st.CreateRun(ctx, store.Run{ID: id, Network: "n", StartedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	runs, err := st.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "a", runs[2].ID)

	runs, err = st.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[1].ID)
}

func testNotFound(t *testing.T, st store.Store) {
	ctx := context.Background()

	_, err := st.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, internalerr.ErrNotFound)
	assert.ErrorIs(t, st.FinishRun(ctx, "missing", time.Now(), 0, 0), internalerr.ErrNotFound)
	assert.ErrorIs(t, st.AppendResults(ctx, "missing", []store.Result{{Query: "P(A=T)"}}), internalerr.ErrNotFound)
	_, err = st.Results(ctx, "missing")
	assert.ErrorIs(t, err, internalerr.ErrNotFound)

	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
