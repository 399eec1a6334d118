// Package engine provides exact and approximate neighbor ranking over a
// dataset. The engine holds no index state of its own: the dataset and any
// accelerating index are passed explicitly on every call.
package engine

import (
	"context"
	"errors"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/neargo/index"
	"github.com/hupe1980/neargo/index/lsh"
)

// ErrEmptyDataset is returned when ranking is requested over no points.
var ErrEmptyDataset = errors.New("dataset contains no points")

// SearchOptions contains per-call options for ranking.
type SearchOptions struct {
	// DistanceType selects the distance function used for ranking.
	DistanceType index.DistanceType

	// Filter restricts ranking to the dataset ids present in the bitmap.
	// A nil filter matches every id.
	Filter *roaring.Bitmap
}

// DefaultSearchOptions contains the default per-call ranking options.
var DefaultSearchOptions = SearchOptions{
	DistanceType: index.DistanceTypeSquaredL2,
}

// ExactNeighbors ranks every dataset point by distance to query and returns
// the k nearest as (id, distance) pairs. Ordering is ascending by
// (distance, id), so repeated calls with identical inputs return identical
// output. When k exceeds the dataset size the whole dataset is returned.
func ExactNeighbors(ctx context.Context, dataset [][]float32, query []float32, k int, optFns ...func(o *SearchOptions)) ([]index.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := DefaultSearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if k <= 0 {
		return nil, index.ErrInvalidK
	}
	if len(dataset) == 0 {
		return nil, ErrEmptyDataset
	}

	distanceFunc := index.NewDistanceFunc(opts.DistanceType)

	results := make([]index.SearchResult, 0, len(dataset))
	for i, p := range dataset {
		id := uint32(i)
		if opts.Filter != nil && !opts.Filter.Contains(id) {
			continue
		}

		d, err := distanceFunc(query, p)
		if err != nil {
			return nil, &index.ErrDimensionMismatch{Expected: len(query), Actual: len(p)}
		}

		results = append(results, index.SearchResult{ID: id, Distance: d})
	}

	return rank(results, k), nil
}

// ApproxNeighbors returns up to numNeighbors near points for query. With a
// hash index it retrieves the candidate buckets and exact-ranks only those,
// trading recall for sub-linear work; true neighbors missing from every
// bucket will be missing from the result. Without an index it degrades to a
// full-scan ranking identical to ExactNeighbors.
//
// The hash index is expected to have been filled from the same dataset, so
// candidate ids address dataset positions.
func ApproxNeighbors(ctx context.Context, dataset [][]float32, query []float32, numNeighbors int, hashIndex *lsh.HashIndex, optFns ...func(o *SearchOptions)) ([]index.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if hashIndex == nil {
		return ExactNeighbors(ctx, dataset, query, numNeighbors, optFns...)
	}

	opts := DefaultSearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if numNeighbors <= 0 {
		return nil, index.ErrInvalidK
	}
	if len(dataset) == 0 {
		return nil, ErrEmptyDataset
	}

	candidates, err := hashIndex.QueryBitmap(ctx, query)
	if err != nil {
		return nil, err
	}
	if opts.Filter != nil {
		candidates.And(opts.Filter)
	}

	distanceFunc := index.NewDistanceFunc(opts.DistanceType)

	results := make([]index.SearchResult, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		id := it.Next()
		if int(id) >= len(dataset) {
			continue
		}

		d, err := distanceFunc(query, dataset[id])
		if err != nil {
			return nil, &index.ErrDimensionMismatch{Expected: len(query), Actual: len(dataset[id])}
		}

		results = append(results, index.SearchResult{ID: id, Distance: d})
	}

	return rank(results, numNeighbors), nil
}

// RankAll runs ExactNeighbors for every query concurrently. The dataset is
// only read, so the fan-out is safe without locking.
func RankAll(ctx context.Context, dataset [][]float32, queries [][]float32, k int, optFns ...func(o *SearchOptions)) ([][]index.SearchResult, error) {
	g, ctx := errgroup.WithContext(ctx)

	out := make([][]index.SearchResult, len(queries))
	for i, q := range queries {
		g.Go(func() error {
			results, err := ExactNeighbors(ctx, dataset, q, k, optFns...)
			if err != nil {
				return err
			}
			out[i] = results
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// rank sorts results ascending by (distance, id) and truncates to k.
func rank(results []index.SearchResult, k int) []index.SearchResult {
	sort.Slice(results, func(i, j int) bool {
		return index.Less(results[i], results[j])
	})

	if len(results) > k {
		results = results[:k]
	}

	return results
}
