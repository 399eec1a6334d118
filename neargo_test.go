package neargo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/neargo/index"
)

var testPoints = [][]float32{{2, 3}, {5, 4}, {9, 6}, {4, 7}, {8, 1}, {7, 2}}

func newTestFacade(t *testing.T, optFns ...Option) *Neargo {
	t.Helper()

	ng, err := New(2, optFns...)
	require.NoError(t, err)

	ctx := context.Background()
	for _, p := range testPoints {
		_, err := ng.Add(ctx, p)
		require.NoError(t, err)
	}

	return ng
}

func TestNew(t *testing.T) {
	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := New(0)
		var invalidDim *index.ErrInvalidDimension
		assert.ErrorAs(t, err, &invalidDim)
	})
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	ng, err := New(2)
	require.NoError(t, err)

	id, err := ng.Add(ctx, []float32{1, 2})
	require.NoError(t, err)
	assert.Equal(t, uint32(0), id)
	assert.Equal(t, 1, ng.Len())

	_, err = ng.Add(ctx, []float32{1, 2, 3})
	var mismatch *ErrDimensionMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 3, mismatch.Actual)

	// The root error unwraps to the index package's error.
	var cause *index.ErrDimensionMismatch
	assert.ErrorAs(t, err, &cause)
}

func TestBuildTreeAndNearest(t *testing.T) {
	ctx := context.Background()
	ng := newTestFacade(t)

	tree, err := ng.BuildTree(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(testPoints), tree.Len())

	best, err := tree.NearestNeighbor(ctx, []float32{9, 2})
	require.NoError(t, err)
	assert.Equal(t, uint32(4), best.ID)
	assert.InDelta(t, 2.0, best.Distance, 1e-6)

	// Facade Nearest agrees with the tree.
	facadeBest, err := ng.Nearest(ctx, []float32{9, 2})
	require.NoError(t, err)
	assert.Equal(t, best.ID, facadeBest.ID)
	assert.InDelta(t, best.Distance, facadeBest.Distance, 1e-6)
}

func TestRank(t *testing.T) {
	ctx := context.Background()
	ng := newTestFacade(t)

	t.Run("Exact", func(t *testing.T) {
		results, err := ng.Rank(ctx, []float32{9, 2}, 3, ModeExact)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, uint32(4), results[0].ID)
		assert.Equal(t, uint32(5), results[1].ID)
	})

	t.Run("ApproxWithoutIndexFallsBack", func(t *testing.T) {
		exact, err := ng.Rank(ctx, []float32{9, 2}, 3, ModeExact)
		require.NoError(t, err)
		approx, err := ng.Rank(ctx, []float32{9, 2}, 3, ModeApprox)
		require.NoError(t, err)
		assert.Equal(t, exact, approx)
	})

	t.Run("ApproxWithIndex", func(t *testing.T) {
		_, err := ng.NewHashIndex(ctx, 12, 64)
		require.NoError(t, err)

		results, err := ng.Rank(ctx, []float32{9, 2}, 3, ModeApprox)
		require.NoError(t, err)
		for i, r := range results {
			assert.Less(t, int(r.ID), len(testPoints))
			if i > 0 {
				assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
			}
		}
	})

	t.Run("EmptyDataset", func(t *testing.T) {
		empty, err := New(2)
		require.NoError(t, err)

		_, err = empty.Rank(ctx, []float32{1, 2}, 1, ModeExact)
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("InvalidK", func(t *testing.T) {
		_, err := ng.Rank(ctx, []float32{9, 2}, 0, ModeExact)
		assert.ErrorIs(t, err, ErrInvalidK)
	})
}

func TestHashIndexSeedOption(t *testing.T) {
	ctx := context.Background()

	a := newTestFacade(t, WithSeed(7))
	b := newTestFacade(t, WithSeed(7))

	idxA, err := a.NewHashIndex(ctx, 8, 64)
	require.NoError(t, err)
	idxB, err := b.NewHashIndex(ctx, 8, 64)
	require.NoError(t, err)

	idsA, err := idxA.Query(ctx, []float32{9, 2})
	require.NoError(t, err)
	idsB, err := idxB.Query(ctx, []float32{9, 2})
	require.NoError(t, err)
	assert.Equal(t, idsA, idsB)
}

func TestMetricsCollection(t *testing.T) {
	ctx := context.Background()

	metrics := &BasicMetricsCollector{}
	ng := newTestFacade(t, WithMetricsCollector(metrics))

	_, err := ng.BuildTree(ctx)
	require.NoError(t, err)

	_, err = ng.Rank(ctx, []float32{9, 2}, 3, ModeExact)
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(len(testPoints)), stats.InsertCount)
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(1), stats.SearchCount)
	assert.Equal(t, int64(0), stats.SearchErrors)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Exact", ModeExact.String())
	assert.Equal(t, "Approx", ModeApprox.String())
	assert.Equal(t, "Unknown", Mode(42).String())
}
