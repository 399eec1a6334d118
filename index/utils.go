package index

// MergeSearchResults merges two sorted lists of SearchResult into a single
// sorted list of size k. Both input lists must be sorted ascending by
// (Distance, ID).
func MergeSearchResults(a, b []SearchResult, k int) []SearchResult {
	if len(a) == 0 {
		if len(b) > k {
			return b[:k]
		}
		return b
	}
	if len(b) == 0 {
		if len(a) > k {
			return a[:k]
		}
		return a
	}

	result := make([]SearchResult, 0, k)
	i, j := 0, 0

	for len(result) < k && (i < len(a) || j < len(b)) {
		switch {
		case i < len(a) && j < len(b):
			if less(a[i], b[j]) {
				result = append(result, a[i])
				i++
			} else {
				result = append(result, b[j])
				j++
			}
		case i < len(a):
			result = append(result, a[i])
			i++
		default:
			result = append(result, b[j])
			j++
		}
	}

	return result
}

// less orders results ascending by distance, breaking ties by ID so that
// rankings are deterministic.
func less(a, b SearchResult) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.ID < b.ID
}

// Less reports whether a sorts before b in ranking order.
func Less(a, b SearchResult) bool { return less(a, b) }
