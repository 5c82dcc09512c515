package core

import "sort"

// Neighbors is the canonical symmetric neighbour relation N_τ that Graph
// Preparation (spec component A) produces over a vertex set V: for every
// undirected edge {u,v} active at a threshold, both (u,v) and (v,u) are
// present, and every vertex additionally carries a self-loop (v,v) so
// isolated vertices acquire a label (invariants 1 and 2).
//
// Vertices are addressed internally by a dense int32 index assigned in
// ascending uid order (UIDs[i] < UIDs[i+1]); neighbour lists are stored
// CSR-style in Offsets/Targets, sorted and deduplicated per vertex, so
// that engine sweeps are allocation-free and cache-friendly. Targets
// holds dense indices, not raw uids — callers resolve a final label back
// to a uid via UID(idx).
type Neighbors struct {
	UIDs    []int64 // dense index -> uid, ascending
	byUID   map[int64]int32
	Offsets []int32 // length len(UIDs)+1
	Targets []int32 // dense neighbour indices, concatenated per vertex
}

// Len reports the number of vertices in the relation.
func (n *Neighbors) Len() int { return len(n.UIDs) }

// UID resolves a dense vertex index back to its original uid.
func (n *Neighbors) UID(idx int32) int64 { return n.UIDs[idx] }

// IndexOf resolves a uid to its dense vertex index.
func (n *Neighbors) IndexOf(uid int64) (int32, bool) {
	idx, ok := n.byUID[uid]
	return idx, ok
}

// NeighborIndices returns the dense indices adjacent to vertex v,
// including v itself (the synthesised self-loop). The returned slice
// aliases internal storage and must not be mutated or retained across a
// Prepare call.
func (n *Neighbors) NeighborIndices(v int32) []int32 {
	return n.Targets[n.Offsets[v]:n.Offsets[v+1]]
}

// Prepare normalises a vertex set V and edge set E into the canonical
// symmetric neighbour relation N_τ at threshold, per spec §4.A.
//
// Errors:
//   - ErrInvalidThreshold if threshold is outside [0,1].
//   - ErrDuplicateVertex  if V contains the same uid twice.
//   - ErrInvalidProbability if an edge's MatchProbability is outside [0,1].
//   - ErrDanglingEdge     if an edge references a uid absent from V.
//
// An empty V is valid and yields an empty Neighbors. Real edges with
// UIDL == UIDR are treated as noise and excluded; the self-loop (v,v) is
// synthesised for every v regardless. The active-edge comparator is
// `>= threshold` unless strict is true, in which case it is `> threshold`
// (used only by the Hierarchical Driver's stability certificate, spec §4.E).
func Prepare(vertices []Vertex, edges []Edge, threshold float64, strict bool) (*Neighbors, error) {
	if threshold < 0 || threshold > 1 {
		return nil, ErrInvalidThreshold
	}

	uids := make([]int64, 0, len(vertices))
	seen := make(map[int64]struct{}, len(vertices))
	for _, v := range vertices {
		if _, dup := seen[v.UID]; dup {
			return nil, ErrDuplicateVertex
		}
		seen[v.UID] = struct{}{}
		uids = append(uids, v.UID)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	byUID := make(map[int64]int32, len(uids))
	for i, uid := range uids {
		byUID[uid] = int32(i)
	}

	// adjacency, built as per-vertex sets to dedupe parallel edges before
	// the CSR pass; self-loops are seeded up front (invariant 2).
	adj := make([]map[int32]struct{}, len(uids))
	for i := range adj {
		adj[i] = map[int32]struct{}{int32(i): {}}
	}

	active := func(p float64) bool {
		if strict {
			return p > threshold
		}
		return p >= threshold
	}

	for _, e := range edges {
		if e.MatchProbability < 0 || e.MatchProbability > 1 {
			return nil, ErrInvalidProbability
		}
		li, ok := byUID[e.UIDL]
		if !ok {
			return nil, ErrDanglingEdge
		}
		ri, ok := byUID[e.UIDR]
		if !ok {
			return nil, ErrDanglingEdge
		}
		if e.UIDL == e.UIDR {
			continue // noise: self-referencing edges are excluded, synthetic loops stand in
		}
		if !active(e.MatchProbability) {
			continue
		}
		adj[li][ri] = struct{}{}
		adj[ri][li] = struct{}{}
	}

	offsets := make([]int32, len(uids)+1)
	total := 0
	for i := range adj {
		total += len(adj[i])
	}
	targets := make([]int32, 0, total)
	for i := range adj {
		offsets[i] = int32(len(targets))
		row := make([]int32, 0, len(adj[i]))
		for idx := range adj[i] {
			row = append(row, idx)
		}
		sort.Slice(row, func(a, b int) bool { return row[a] < row[b] })
		targets = append(targets, row...)
	}
	offsets[len(uids)] = int32(len(targets))

	return &Neighbors{
		UIDs:    uids,
		byUID:   byUID,
		Offsets: offsets,
		Targets: targets,
	}, nil
}
