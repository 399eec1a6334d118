package kdtree

// Stats describes the shape of a built tree.
type Stats struct {
	Points int // number of indexed points
	Height int // longest root-to-leaf path; 0 for an empty tree
}

// Stats returns a snapshot of the tree's shape.
func (t *KDTree) Stats() Stats {
	return Stats{
		Points: len(t.points),
		Height: t.height(t.root),
	}
}

func (t *KDTree) height(h int32) int {
	if h == nilNode {
		return 0
	}
	l := t.height(t.nodes[h].left)
	r := t.height(t.nodes[h].right)
	if l > r {
		return l + 1
	}
	return r + 1
}
