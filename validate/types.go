package validate

import "fmt"

// Mismatch records one pair of vertices whose co-membership disagrees
// between the engine's labelling and a reference traversal.
type Mismatch struct {
	UIDA, UIDB int64
	// InEngine reports whether the engine put the pair in the same
	// cluster; the reference traversal says the opposite.
	InEngine bool
}

func (m Mismatch) String() string {
	return fmt.Sprintf("(%d,%d): engine says same-cluster=%v", m.UIDA, m.UIDB, m.InEngine)
}

// Report is the result of cross-checking an engine's labelling against
// independent reference traversals (spec §4.F).
type Report struct {
	// Agrees is true iff the engine labelling and every reference
	// traversal induce the same partition.
	Agrees bool
	// Mismatches lists up to a bounded number of disagreeing pairs,
	// empty when Agrees is true.
	Mismatches []Mismatch
	// BFSLabels, DFSLabels, DSULabels are the three independent
	// reference partitions computed over the same neighbour relation.
	BFSLabels map[int64]int64
	DFSLabels map[int64]int64
	DSULabels map[int64]int64
}
