package neargo

import (
	"context"
	"slices"
	"time"

	"github.com/hupe1980/neargo/engine"
	"github.com/hupe1980/neargo/index"
	"github.com/hupe1980/neargo/index/kdtree"
	"github.com/hupe1980/neargo/index/lsh"
)

// Mode selects the ranking strategy used by Rank.
type Mode int

const (
	// ModeExact ranks by brute force over the full dataset.
	ModeExact Mode = iota

	// ModeApprox ranks hash-index candidates only. Without a built hash
	// index it behaves like ModeExact.
	ModeApprox
)

// String returns a string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "Exact"
	case ModeApprox:
		return "Approx"
	default:
		return "Unknown"
	}
}

// Neargo owns a dataset of fixed-dimension points and hands out index
// snapshots and rankings over it. It is single-writer: Add must not run
// concurrently with other calls.
type Neargo struct {
	opts      options
	dimension int
	dataset   [][]float32
	hashIndex *lsh.HashIndex
}

// New creates a facade for points of the given dimensionality.
func New(dimension int, optFns ...Option) (*Neargo, error) {
	if dimension <= 0 {
		return nil, &index.ErrInvalidDimension{Dimension: dimension}
	}

	return &Neargo{
		opts:      applyOptions(optFns),
		dimension: dimension,
	}, nil
}

// Add appends a point to the dataset and returns its identifier. Indexes
// built before this call do not see the new point; rebuild to include it.
func (n *Neargo) Add(ctx context.Context, point []float32) (uint32, error) {
	start := time.Now()

	id, err := n.add(ctx, point)

	n.opts.metricsCollector.RecordInsert(time.Since(start), err)
	n.opts.logger.LogInsert(ctx, id, len(point), err)

	return id, translateError(err)
}

func (n *Neargo) add(ctx context.Context, point []float32) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(point) == 0 {
		return 0, index.ErrEmptyVector
	}
	if len(point) != n.dimension {
		return 0, &index.ErrDimensionMismatch{Expected: n.dimension, Actual: len(point)}
	}

	id := uint32(len(n.dataset))
	n.dataset = append(n.dataset, slices.Clone(point))

	return id, nil
}

// Len returns the number of points in the dataset.
func (n *Neargo) Len() int { return len(n.dataset) }

// Dimension returns the configured dimensionality.
func (n *Neargo) Dimension() int { return n.dimension }

// BuildTree builds a KD-tree snapshot of the current dataset. The returned
// tree is immutable and remains valid (but stale) across later Adds.
func (n *Neargo) BuildTree(ctx context.Context) (*kdtree.KDTree, error) {
	start := time.Now()

	tree, err := kdtree.Build(ctx, n.dataset, func(o *kdtree.Options) {
		o.Dimension = n.dimension
	})

	n.opts.metricsCollector.RecordBuild(len(n.dataset), time.Since(start), err)
	n.opts.logger.LogBuild(ctx, "kdtree", len(n.dataset), err)

	if err != nil {
		return nil, translateError(err)
	}

	return tree, nil
}

// NewHashIndex builds a hash index over the current dataset and attaches it
// to the facade for ModeApprox ranking. The index is also returned for
// direct Insert/Query use; later facade Adds do not flow into it.
func (n *Neargo) NewHashIndex(ctx context.Context, numHashes, bucketSize int) (*lsh.HashIndex, error) {
	start := time.Now()

	hashIndex, err := n.newHashIndex(ctx, numHashes, bucketSize)

	n.opts.metricsCollector.RecordBuild(len(n.dataset), time.Since(start), err)
	n.opts.logger.LogBuild(ctx, "lsh", len(n.dataset), err)

	if err != nil {
		return nil, translateError(err)
	}

	n.hashIndex = hashIndex

	return hashIndex, nil
}

func (n *Neargo) newHashIndex(ctx context.Context, numHashes, bucketSize int) (*lsh.HashIndex, error) {
	hashIndex, err := lsh.New(func(o *lsh.Options) {
		o.Dimension = n.dimension
		o.NumHashes = numHashes
		o.BucketSize = bucketSize
		o.Seed = n.opts.seed
	})
	if err != nil {
		return nil, err
	}

	for _, p := range n.dataset {
		if _, err := hashIndex.Insert(ctx, p); err != nil {
			return nil, err
		}
	}

	return hashIndex, nil
}

// Nearest returns the exact nearest dataset point to target.
func (n *Neargo) Nearest(ctx context.Context, target []float32) (index.SearchResult, error) {
	results, err := n.Rank(ctx, target, 1, ModeExact)
	if err != nil {
		return index.SearchResult{}, err
	}

	return results[0], nil
}

// Rank returns the k nearest dataset points to query under the configured
// distance type, ranked ascending by (distance, id).
func (n *Neargo) Rank(ctx context.Context, query []float32, k int, mode Mode) ([]index.SearchResult, error) {
	start := time.Now()

	results, err := n.rank(ctx, query, k, mode)

	n.opts.metricsCollector.RecordSearch(k, time.Since(start), err)
	n.opts.logger.LogSearch(ctx, k, len(results), err)

	if err != nil {
		return nil, translateError(err)
	}

	return results, nil
}

func (n *Neargo) rank(ctx context.Context, query []float32, k int, mode Mode) ([]index.SearchResult, error) {
	if len(query) != n.dimension {
		return nil, &index.ErrDimensionMismatch{Expected: n.dimension, Actual: len(query)}
	}

	withDistance := func(o *engine.SearchOptions) {
		o.DistanceType = n.opts.distanceType
	}

	switch mode {
	case ModeApprox:
		return engine.ApproxNeighbors(ctx, n.dataset, query, k, n.hashIndex, withDistance)
	default:
		return engine.ExactNeighbors(ctx, n.dataset, query, k, withDistance)
	}
}

// PointByID returns the dataset point stored under the given identifier.
// The returned slice is owned by the facade and must not be modified.
func (n *Neargo) PointByID(id uint32) ([]float32, bool) {
	if int(id) >= len(n.dataset) {
		return nil, false
	}
	return n.dataset[id], true
}
