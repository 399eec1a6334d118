package kdtree

// selectMedian partially orders ids so that ids[k] holds the element with
// the k-th smallest coordinate along axis, with lesser elements before it
// and greater-or-equal elements after it. Expected linear time.
func selectMedian(points [][]float32, ids []uint32, axis, k int) {
	lo, hi := 0, len(ids)-1
	for lo < hi {
		p := partition(points, ids, axis, lo, hi)
		switch {
		case p == k:
			return
		case p < k:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partition rearranges ids[lo:hi+1] around a median-of-three pivot and
// returns the pivot's final position. Elements strictly less than the pivot
// value end up before it, everything else after it.
func partition(points [][]float32, ids []uint32, axis, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if points[ids[mid]][axis] < points[ids[lo]][axis] {
		ids[lo], ids[mid] = ids[mid], ids[lo]
	}
	if points[ids[hi]][axis] < points[ids[lo]][axis] {
		ids[lo], ids[hi] = ids[hi], ids[lo]
	}
	if points[ids[hi]][axis] < points[ids[mid]][axis] {
		ids[mid], ids[hi] = ids[hi], ids[mid]
	}

	pivot := points[ids[mid]][axis]
	ids[mid], ids[hi] = ids[hi], ids[mid]

	store := lo
	for i := lo; i < hi; i++ {
		if points[ids[i]][axis] < pivot {
			ids[i], ids[store] = ids[store], ids[i]
			store++
		}
	}
	ids[store], ids[hi] = ids[hi], ids[store]

	return store
}
