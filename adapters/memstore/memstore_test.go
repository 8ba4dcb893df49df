package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"par2/domain/analysis"
	"par2/domain/core"
	"par2/domain/series"
)

func batchResult(runID core.RunID, datasetID core.DatasetID) analysis.BatchResult {
	return analysis.BatchResult{
		Manifest: analysis.BatchManifest{
			RunID:     runID,
			DatasetID: datasetID,
			Seed:      42,
			Alpha:     0.05,
			CreatedAt: core.Now(),
		},
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := New()
	ctx := context.Background()

	result := batchResult("run-1", "liver")
	require.NoError(t, store.SaveRun(ctx, result))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, result.Manifest.RunID, got.Manifest.RunID)
	assert.Equal(t, result.Manifest.Seed, got.Manifest.Seed)
}

func TestStore_InsertOnce(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, batchResult("run-1", "liver")))
	err := store.SaveRun(ctx, batchResult("run-1", "liver"))
	assert.ErrorIs(t, err, core.ErrRunExists)
}

func TestStore_GetMissing(t *testing.T) {
	store := New()
	_, err := store.GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrRunNotFound)
	assert.True(t, core.IsNotFoundError(err))
}

func TestStore_ListRunsFiltersByDataset(t *testing.T) {
	store := New()
	ctx := context.Background()
	require.NoError(t, store.SaveRun(ctx, batchResult("run-a", "liver")))
	require.NoError(t, store.SaveRun(ctx, batchResult("run-b", "liver")))
	require.NoError(t, store.SaveRun(ctx, batchResult("run-c", "kidney")))

	manifests, err := store.ListRuns(ctx, "liver")
	require.NoError(t, err)
	require.Len(t, manifests, 2)
	assert.Equal(t, core.RunID("run-a"), manifests[0].RunID)
	assert.Equal(t, core.RunID("run-b"), manifests[1].RunID)
}

func TestStore_DeleteRun(t *testing.T) {
	store := New()
	ctx := context.Background()
	require.NoError(t, store.SaveRun(ctx, batchResult("run-1", "liver")))
	require.NoError(t, store.DeleteRun(ctx, "run-1"))

	_, err := store.GetRun(ctx, "run-1")
	assert.ErrorIs(t, err, core.ErrRunNotFound)
	assert.ErrorIs(t, store.DeleteRun(ctx, "run-1"), core.ErrRunNotFound)
}

func TestStore_RejectsEmptyRunID(t *testing.T) {
	store := New()
	err := store.SaveRun(context.Background(), analysis.BatchResult{})
	assert.Error(t, err)
}

func TestSeriesProvider_RoundTrip(t *testing.T) {
	provider := NewSeriesProvider()
	ctx := context.Background()
	datasetID := core.DatasetID("liver")

	ts := series.New([]float64{0, 2, 4}, []float64{1.0, 1.5, 1.2})
	provider.AddSeries(datasetID, "BMAL1", ts)
	provider.AddSeries(datasetID, "ALB", ts)
	provider.SetClockReference(datasetID, ts)

	genes, err := provider.Genes(ctx, datasetID)
	require.NoError(t, err)
	assert.Equal(t, []core.GeneKey{"ALB", "BMAL1"}, genes, "sorted order")

	got, err := provider.Series(ctx, datasetID, "BMAL1")
	require.NoError(t, err)
	assert.Equal(t, ts.Values, got.Values)

	clock, err := provider.ClockReference(ctx, datasetID)
	require.NoError(t, err)
	assert.Equal(t, ts.Values, clock.Values)
}

func TestSeriesProvider_MissingLookups(t *testing.T) {
	provider := NewSeriesProvider()
	ctx := context.Background()

	_, err := provider.Genes(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)

	provider.AddSeries("liver", "ALB", series.FromValues([]float64{1, 2}))
	_, err = provider.Series(ctx, "liver", "MISSING")
	assert.ErrorIs(t, err, core.ErrGeneNotFound)

	_, err = provider.ClockReference(ctx, "liver")
	assert.ErrorIs(t, err, core.ErrSeriesMissing)
}
