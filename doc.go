// Package neargo provides in-memory nearest-neighbor search over
// fixed-dimension float32 points.
//
// Two index structures are available behind a shared distance abstraction:
// an exact KD-tree (package index/kdtree) and an approximate
// locality-sensitive hash index (package index/lsh). The engine package
// ranks neighbors either by brute force or through a hash index, and the
// root package ties the pieces together behind a small facade.
//
// # Quick Start
//
//	ctx := context.Background()
//	ng, _ := neargo.New(2)
//
//	for _, p := range [][]float32{{2, 3}, {5, 4}, {9, 6}, {4, 7}, {8, 1}, {7, 2}} {
//	    ng.Add(ctx, p)
//	}
//
//	// Exact nearest neighbor via a KD-tree snapshot of the dataset.
//	tree, _ := ng.BuildTree(ctx)
//	best, _ := tree.NearestNeighbor(ctx, []float32{9, 2})
//
//	// Ranked neighbors straight from the facade.
//	results, _ := ng.Rank(ctx, []float32{9, 2}, 3, neargo.ModeExact)
//
// # Approximate Search
//
// Building a hash index switches ModeApprox from full-scan ranking to LSH
// candidate retrieval followed by exact ranking of the candidates:
//
//	ng.NewHashIndex(ctx, 8, 64)
//	results, _ := ng.Rank(ctx, []float32{9, 2}, 3, neargo.ModeApprox)
//
// Approximate results may miss true neighbors; the trade-off is bounded
// per-query work independent of dataset size.
//
// # Concurrency
//
// A built KD-tree is immutable and safe for concurrent readers. The facade
// and the hash index are single-writer: do not call Add or Insert
// concurrently with queries without external synchronization.
package neargo
