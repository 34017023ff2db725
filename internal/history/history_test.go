package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mwiater/litebench/internal/benchmark"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "db", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func result(id, model string, finished time.Time, avg float64) benchmark.Result {
	return benchmark.Result{
		RunID:      id,
		ModelName:  model,
		Labels:     benchmark.LabelsConventional.String(),
		Warmup:     1,
		Samples:    3,
		Min:        avg - 1,
		Max:        avg + 1,
		Average:    avg,
		Median:     avg,
		StartedAt:  finished.Add(-time.Second),
		FinishedAt: finished,
	}
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, store.Record(ctx, result("a", "mobilenet", base, 4)))
	require.NoError(t, store.Record(ctx, result("b", "mobilenet", base.Add(time.Minute), 5)))
	require.NoError(t, store.Record(ctx, result("c", "resnet", base.Add(2*time.Minute), 9)))

	all, err := store.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "c", all[0].RunID)

	mobilenet, err := store.List(ctx, "mobilenet", 1)
	require.NoError(t, err)
	require.Len(t, mobilenet, 1)
	require.Equal(t, "b", mobilenet[0].RunID)
	require.Equal(t, 5.0, mobilenet[0].Average)
	require.Equal(t, 3, mobilenet[0].Samples)
	require.True(t, mobilenet[0].FinishedAt.Equal(base.Add(time.Minute)))
}

func TestRecordReplacesSameRunID(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	now := time.Now()

	require.NoError(t, store.Record(ctx, result("a", "m", now, 1)))
	require.NoError(t, store.Record(ctx, result("a", "m", now, 2)))

	entries, err := store.List(ctx, "m", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 2.0, entries[0].Average)
}

func TestRecordRequiresRunID(t *testing.T) {
	store := openStore(t)
	require.ErrorIs(t, store.Record(context.Background(), benchmark.Result{ModelName: "m"}), ErrNoRunID)
}
