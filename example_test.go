package neargo_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/neargo"
)

func Example() {
	ctx := context.Background()

	ng, err := neargo.New(2)
	if err != nil {
		panic(err)
	}

	for _, p := range [][]float32{{2, 3}, {5, 4}, {9, 6}, {4, 7}, {8, 1}, {7, 2}} {
		if _, err := ng.Add(ctx, p); err != nil {
			panic(err)
		}
	}

	tree, err := ng.BuildTree(ctx)
	if err != nil {
		panic(err)
	}

	best, err := tree.NearestNeighbor(ctx, []float32{9, 2})
	if err != nil {
		panic(err)
	}

	point, _ := ng.PointByID(best.ID)
	fmt.Printf("nearest: %v (squared distance %.0f)\n", point, best.Distance)

	results, err := ng.Rank(ctx, []float32{9, 2}, 3, neargo.ModeExact)
	if err != nil {
		panic(err)
	}

	for _, r := range results {
		p, _ := ng.PointByID(r.ID)
		fmt.Printf("rank: %v (squared distance %.0f)\n", p, r.Distance)
	}

	// Output:
	// nearest: [8 1] (squared distance 2)
	// rank: [8 1] (squared distance 2)
	// rank: [7 2] (squared distance 4)
	// rank: [9 6] (squared distance 16)
}
