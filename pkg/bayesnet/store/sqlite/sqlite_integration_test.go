package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/bayesnet/pkg/bayesnet/store"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store/storetest"
)

func TestSQLiteConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
		require.NoError(t, err)
		t.Cleanup(func() { st.Close() })
		return st
	})
}

// TestSQLiteReopen checks runs survive closing the database
func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	st, err := OpenSQLite(ctx, dbPath)
	require.NoError(t, err)

	started := time.Date(2026, 5, 4, 3, 2, 1, 123456789, time.UTC)
	require.NoError(t, st.CreateRun(ctx, store.Run{ID: "01J0REOPEN", Network: "alarm", StartedAt: started, Queries: 1}))
	require.NoError(t, st.AppendResults(ctx, "01J0REOPEN", []store.Result{
		{Seq: 0, Query: "P(B=T|J=T,M=T)", Algorithm: 2, Probability: 0.284171835, Additions: 7, Multiplications: 16},
	}))
	require.NoError(t, st.Close())

	st, err = OpenSQLite(ctx, dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.GetRun(ctx, "01J0REOPEN")
	require.NoError(t, err)
	assert.True(t, started.Equal(run.StartedAt), "nanoseconds preserved")

	results, err := st.Results(ctx, "01J0REOPEN")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 0.284171835, results[0].Probability, 1e-12)
	assert.Equal(t, 16, results[0].Multiplications)
}

func TestSQLiteDuplicateSeqRollsBack(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.CreateRun(ctx, store.Run{ID: "r", Network: "n", StartedAt: time.Now()}))
	err = st.AppendResults(ctx, "r", []store.Result{
		{Seq: 0, Query: "P(A=T)"},
		{Seq: 0, Query: "P(A=F)"},
	})
	require.Error(t, err)

	results, err := st.Results(ctx, "r")
	require.NoError(t, err)
	assert.Empty(t, results, "partial batch must not be committed")
}
