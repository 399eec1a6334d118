package lsh

// Stats describes the bucket occupancy of a hash index.
type Stats struct {
	Points    int // number of inserted points
	Tables    int // number of hash tables
	Buckets   int // total non-empty buckets across all tables
	MaxBucket int // size of the fullest bucket
}

// Stats returns a snapshot of the index's bucket occupancy.
func (h *HashIndex) Stats() Stats {
	s := Stats{
		Points: len(h.points),
		Tables: len(h.tables),
	}
	for _, table := range h.tables {
		for _, bucket := range table {
			s.Buckets++
			if len(bucket) > s.MaxBucket {
				s.MaxBucket = len(bucket)
			}
		}
	}
	return s
}
