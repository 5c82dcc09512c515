package core

import "errors"

// Sentinel errors returned by Graph Preparation and propagated, wrapped,
// by every engine built on top of it.
var (
	// ErrDuplicateVertex indicates the vertex set contains the same uid twice.
	ErrDuplicateVertex = errors.New("core: duplicate vertex uid")

	// ErrDanglingEdge indicates an edge references a uid absent from the vertex set.
	ErrDanglingEdge = errors.New("core: edge references unknown vertex uid")

	// ErrInvalidThreshold indicates a threshold outside the closed interval [0,1].
	ErrInvalidThreshold = errors.New("core: threshold must be in [0,1]")

	// ErrInvalidProbability indicates an edge carries a match probability outside [0,1].
	ErrInvalidProbability = errors.New("core: match_probability must be in [0,1]")
)

// Vertex is a single node, identified by a 64-bit uid. The vertex set's
// total order (plain integer comparison over UID) is what gives "the
// minimum vertex id in a component" a well-defined meaning throughout
// the lpuf and activeset engines.
type Vertex struct {
	UID int64
}

// Edge is an unordered pair of vertex uids plus the probability that the
// two referents are a true match. UIDL and UIDR are never interpreted as
// ordered; MatchProbability must lie in [0,1]. An edge with UIDL == UIDR
// is noise (see Prepare) and is excluded from the prepared relation —
// self-loops are synthesised separately, once per vertex.
type Edge struct {
	UIDL             int64
	UIDR             int64
	MatchProbability float64
}
