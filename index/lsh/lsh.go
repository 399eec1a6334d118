// Package lsh provides an approximate nearest-neighbor index based on
// locality-sensitive hashing with random hyperplane projections. Points that
// are close in space tend to share hash buckets, so a query touches only
// O(numHashes) buckets instead of the full dataset. Results are candidates,
// not ranked neighbors: the index applies no distance filtering, and near
// neighbors can be missed while distant bucket-mates are included.
package lsh

import (
	"context"
	"math"
	"math/rand"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/neargo/index"
	"github.com/hupe1980/neargo/internal/math32"
)

// Options contains configuration options for the hash index.
type Options struct {
	// Dimension is the fixed vector dimensionality for this index.
	Dimension int

	// NumHashes is the number of independent hash tables. More tables raise
	// recall at the cost of insert/query work.
	NumHashes int

	// BucketSize bounds the number of ids per bucket. When a bucket
	// overflows, the oldest admitted id is evicted (bounded FIFO).
	BucketSize int

	// Seed feeds the PRNG that draws the projection directions, so a fixed
	// seed gives a fully reproducible index.
	Seed int64
}

// DefaultOptions contains the default configuration options for the hash index.
var DefaultOptions = Options{
	Dimension:  0,
	NumHashes:  8,
	BucketSize: 64,
	Seed:       1,
}

// HashIndex is an approximate nearest-neighbor index. Insert is supported at
// any time; Insert and Query must not run concurrently without external
// synchronization.
type HashIndex struct {
	opts       Options
	directions [][]float32
	tables     []map[int64][]uint32
	points     [][]float32
}

// New creates a new hash index. All projection directions are drawn at
// construction time from a PRNG seeded with Options.Seed, with coordinates
// uniform in [-1, 1], and stay fixed for the lifetime of the index.
func New(optFns ...func(o *Options)) (*HashIndex, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Dimension <= 0 {
		return nil, &index.ErrInvalidDimension{Dimension: opts.Dimension}
	}
	if opts.NumHashes <= 0 {
		return nil, &index.ErrInvalidConfiguration{Field: "NumHashes", Value: opts.NumHashes}
	}
	if opts.BucketSize <= 0 {
		return nil, &index.ErrInvalidConfiguration{Field: "BucketSize", Value: opts.BucketSize}
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	directions := make([][]float32, opts.NumHashes)
	for i := range directions {
		d := make([]float32, opts.Dimension)
		for j := range d {
			d[j] = float32(rng.Float64()*2 - 1)
		}
		directions[i] = d
	}

	tables := make([]map[int64][]uint32, opts.NumHashes)
	for i := range tables {
		tables[i] = make(map[int64][]uint32)
	}

	return &HashIndex{
		opts:       opts,
		directions: directions,
		tables:     tables,
	}, nil
}

// key computes the bucket key of v in the given hash table.
func (h *HashIndex) key(table int, v []float32) int64 {
	return int64(math.Floor(float64(math32.Dot(h.directions[table], v))))
}

// Insert adds a point to every hash table and returns its identifier.
// A bucket that exceeds BucketSize evicts its oldest id, so under sustained
// overflow a point may end up retained by only some (or none) of the tables.
func (h *HashIndex) Insert(ctx context.Context, point []float32) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(point) == 0 {
		return 0, index.ErrEmptyVector
	}
	if len(point) != h.opts.Dimension {
		return 0, &index.ErrDimensionMismatch{Expected: h.opts.Dimension, Actual: len(point)}
	}

	id := uint32(len(h.points))
	h.points = append(h.points, slices.Clone(point))

	for i := range h.tables {
		k := h.key(i, point)
		bucket := append(h.tables[i][k], id)
		if len(bucket) > h.opts.BucketSize {
			copy(bucket, bucket[1:])
			bucket = bucket[:len(bucket)-1]
		}
		h.tables[i][k] = bucket
	}

	return id, nil
}

// Query returns the identifiers of all points sharing a bucket with the
// query point in any hash table, deduplicated and in ascending id order.
// The result may be empty, and it is not distance-filtered.
func (h *HashIndex) Query(ctx context.Context, point []float32) ([]uint32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(point) != h.opts.Dimension {
		return nil, &index.ErrDimensionMismatch{Expected: h.opts.Dimension, Actual: len(point)}
	}

	seen := roaring.New()
	for i := range h.tables {
		for _, id := range h.tables[i][h.key(i, point)] {
			seen.Add(id)
		}
	}

	if seen.IsEmpty() {
		return nil, nil
	}

	return seen.ToArray(), nil
}

// QueryBitmap is like Query but returns the candidate set as a bitmap,
// avoiding the array materialization when the caller intersects or iterates.
func (h *HashIndex) QueryBitmap(ctx context.Context, point []float32) (*roaring.Bitmap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(point) != h.opts.Dimension {
		return nil, &index.ErrDimensionMismatch{Expected: h.opts.Dimension, Actual: len(point)}
	}

	seen := roaring.New()
	for i := range h.tables {
		for _, id := range h.tables[i][h.key(i, point)] {
			seen.Add(id)
		}
	}

	return seen, nil
}

// PointByID returns the point stored under the given identifier. The
// returned slice is owned by the index and must not be modified.
func (h *HashIndex) PointByID(id uint32) ([]float32, bool) {
	if int(id) >= len(h.points) {
		return nil, false
	}
	return h.points[id], true
}

// Len returns the number of inserted points.
func (h *HashIndex) Len() int { return len(h.points) }

// Dimension returns the configured dimensionality.
func (h *HashIndex) Dimension() int { return h.opts.Dimension }

// NumHashes returns the number of hash tables.
func (h *HashIndex) NumHashes() int { return h.opts.NumHashes }
