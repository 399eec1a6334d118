// Package kdtree provides an exact nearest-neighbor index over
// fixed-dimension points. The tree partitions points by cycling through
// coordinate axes and answers queries with branch-and-bound pruning, so the
// result is always the true nearest point under squared L2 distance.
package kdtree

import (
	"context"
	"slices"

	"github.com/hupe1980/neargo/index"
	"github.com/hupe1980/neargo/internal/math32"
	"github.com/hupe1980/neargo/internal/queue"
)

// nilNode marks an absent child in the node arena.
const nilNode = int32(-1)

// node is an arena entry. Children are arena handles, not pointers, which
// keeps the tree a single allocation and rules out ownership cycles.
type node struct {
	id    uint32 // position of the point in the tree's point slice
	axis  uint16 // split axis, depth mod dimension
	left  int32
	right int32
}

// Options contains configuration options for the KD-tree.
type Options struct {
	// Dimension is the fixed vector dimensionality for this index.
	// It must be > 0 and is enforced for all builds and searches.
	Dimension int
}

// DefaultOptions contains the default configuration options for the KD-tree.
var DefaultOptions = Options{
	Dimension: 0,
}

// KDTree is an exact nearest-neighbor index. It is immutable after Build and
// therefore safe for concurrent readers; adding points requires a rebuild.
type KDTree struct {
	opts   Options
	points [][]float32
	nodes  []node
	root   int32
}

// Build constructs a KD-tree over the given points.
//
// Construction recursively partitions the point set around the median along
// the axis depth mod dimension, so the tree is balanced by construction and
// has O(log n) expected height. The median is found with quickselect, not a
// full sort. Points equal to the median along the split axis stay on
// whichever side the partition step leaves them; search never prunes a
// zero-width margin, so duplicates are still found.
func Build(ctx context.Context, points [][]float32, optFns ...func(o *Options)) (*KDTree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Dimension <= 0 {
		return nil, &index.ErrInvalidDimension{Dimension: opts.Dimension}
	}

	for _, p := range points {
		if len(p) != opts.Dimension {
			return nil, &index.ErrDimensionMismatch{Expected: opts.Dimension, Actual: len(p)}
		}
	}

	t := &KDTree{
		opts:   opts,
		points: make([][]float32, len(points)),
		nodes:  make([]node, 0, len(points)),
		root:   nilNode,
	}
	for i, p := range points {
		t.points[i] = slices.Clone(p)
	}

	ids := make([]uint32, len(points))
	for i := range ids {
		ids[i] = uint32(i)
	}
	t.root = t.build(ids, 0)

	return t, nil
}

// build recursively partitions ids and appends the resulting subtree to the
// arena, returning its root handle.
func (t *KDTree) build(ids []uint32, depth int) int32 {
	if len(ids) == 0 {
		return nilNode
	}

	axis := depth % t.opts.Dimension
	mid := len(ids) / 2
	selectMedian(t.points, ids, axis, mid)

	h := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{id: ids[mid], axis: uint16(axis), left: nilNode, right: nilNode})

	left := t.build(ids[:mid], depth+1)
	right := t.build(ids[mid+1:], depth+1)
	t.nodes[h].left = left
	t.nodes[h].right = right

	return h
}

// NearestNeighbor returns the exact nearest point to target under squared L2
// distance. Ties are broken by the first point encountered in traversal
// order.
func (t *KDTree) NearestNeighbor(ctx context.Context, target []float32) (index.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return index.SearchResult{}, err
	}
	if t.root == nilNode {
		return index.SearchResult{}, index.ErrEmptyIndex
	}
	if len(target) != t.opts.Dimension {
		return index.SearchResult{}, &index.ErrDimensionMismatch{Expected: t.opts.Dimension, Actual: len(target)}
	}

	best := index.SearchResult{}
	found := false
	t.searchNearest(t.root, target, &best, &found)

	return best, nil
}

// searchNearest descends into the child on the target's side of the
// splitting hyperplane first, then visits the far side only if the
// hyperplane is closer than the best distance seen so far.
func (t *KDTree) searchNearest(h int32, target []float32, best *index.SearchResult, found *bool) {
	if h == nilNode {
		return
	}

	n := t.nodes[h]
	d := math32.SquaredL2(target, t.points[n.id])
	if !*found || d < best.Distance {
		*found = true
		*best = index.SearchResult{ID: n.id, Distance: d}
	}

	delta := target[n.axis] - t.points[n.id][n.axis]
	near, far := n.left, n.right
	if delta > 0 {
		near, far = n.right, n.left
	}

	t.searchNearest(near, target, best, found)
	if delta*delta < best.Distance {
		t.searchNearest(far, target, best, found)
	}
}

// KNNSearch performs a K-nearest neighbor search, returning up to k results
// sorted ascending by distance. When k exceeds the number of indexed points,
// all points are returned.
func (t *KDTree) KNNSearch(ctx context.Context, target []float32, k int) ([]index.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, index.ErrInvalidK
	}
	if t.root == nilNode {
		return nil, index.ErrEmptyIndex
	}
	if len(target) != t.opts.Dimension {
		return nil, &index.ErrDimensionMismatch{Expected: t.opts.Dimension, Actual: len(target)}
	}

	if k > len(t.points) {
		k = len(t.points)
	}

	top := queue.NewMax(k)
	t.searchKNN(t.root, target, k, top)

	results := make([]index.SearchResult, top.Len())
	for i := top.Len() - 1; i >= 0; i-- {
		item, _ := top.Pop()
		results[i] = index.SearchResult{ID: item.Node, Distance: item.Distance}
	}

	return results, nil
}

// searchKNN prunes against the current k-th best distance instead of the
// single best, which is the only difference from searchNearest.
func (t *KDTree) searchKNN(h int32, target []float32, k int, top *queue.PriorityQueue) {
	if h == nilNode {
		return
	}

	n := t.nodes[h]
	d := math32.SquaredL2(target, t.points[n.id])
	if top.Len() < k {
		top.Push(queue.Item{Node: n.id, Distance: d})
	} else if worst, _ := top.Top(); d < worst.Distance {
		top.Pop()
		top.Push(queue.Item{Node: n.id, Distance: d})
	}

	delta := target[n.axis] - t.points[n.id][n.axis]
	near, far := n.left, n.right
	if delta > 0 {
		near, far = n.right, n.left
	}

	t.searchKNN(near, target, k, top)

	worst, ok := top.Top()
	if top.Len() < k || (ok && delta*delta < worst.Distance) {
		t.searchKNN(far, target, k, top)
	}
}

// PointByID returns the point stored under the given identifier. The
// returned slice is owned by the tree and must not be modified.
func (t *KDTree) PointByID(id uint32) ([]float32, bool) {
	if int(id) >= len(t.points) {
		return nil, false
	}
	return t.points[id], true
}

// Len returns the number of indexed points.
func (t *KDTree) Len() int { return len(t.points) }

// Dimension returns the configured dimensionality.
func (t *KDTree) Dimension() int { return t.opts.Dimension }
