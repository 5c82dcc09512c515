// Package rpc implements the Randomised Parallel Contraction engine: a
// star-contraction connected-components algorithm that trades LPUF's
// O(diameter) iteration count for O(log n) expected levels by hashing
// each level's vertices down through an affine map and contracting
// local hash-minima (spec component D).
//
// Grounded on `randomised_contraction_fast.py`'s R{i}/E contraction
// loop and its `axb(a,x,b) = (a*x+b) mod 2**32` macro, and on the
// DROP/RENAME table-rebuild idiom shared with package lpuf. The
// DuckDB macro becomes hashAffine; the dynamically-named R1, R2, ...
// tables become an ordered []level slice per spec §9's "do not name
// dynamically-keyed tables by string" guidance; the composition-lift
// while-loop becomes the descending loop in liftLabels.
package rpc

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/RobinL/clustergraph/core"
)

const engineName = "rpc"

const mask32 = 0xFFFFFFFF

type pair struct{ v, w uint64 }

type level struct {
	a, b uint64
	rep  map[uint64]uint64
}

// Run computes a total uid -> label mapping over n such that two
// vertices share a label iff they are connected in n (spec §4.D).
// Labels are hash-derived, not minimum-id; distinct components receive
// distinct labels unless their raw hash-derived labels collide. By
// default labels are canonicalised to dense integers (see
// WithCanonicalize).
//
// Errors: ErrContractionDiverged if the level count exceeds the
// sanity bound before the edge set empties; ctx.Err() if the supplied
// context is cancelled between levels.
func Run(n *core.Neighbors, opts ...Option) (map[int64]int64, Stats, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	size := n.Len()
	if size == 0 {
		return map[int64]int64{}, Stats{}, nil
	}

	edges, touched := buildEdges(n)

	var levels []level
	var seeds []Seed
	cur := edges
	for {
		select {
		case <-o.ctx.Done():
			return nil, Stats{Levels: len(levels)}, o.ctx.Err()
		default:
		}

		if len(cur) == 0 {
			break
		}
		if len(levels) >= o.maxLevels {
			return nil, Stats{Levels: len(levels)}, fmt.Errorf("%w: exceeded %d levels", ErrContractionDiverged, o.maxLevels)
		}

		a, b := drawSeed(o.rng)
		rep := contractLevel(cur, a, b, o.recorder)
		levels = append(levels, level{a: a, b: b, rep: rep})
		seeds = append(seeds, Seed{A: a, B: b})

		next := projectEdges(cur, rep)
		o.logger.Debug().Int("level", len(levels)).Int("edges_remaining", len(next)).Msg("rpc: level contracted")
		cur = next
	}

	raw := liftLabels(levels, touched)

	stats := Stats{Levels: len(levels), Seeds: seeds}

	if !o.canonicalize {
		out := make(map[int64]int64, size)
		for v := 0; v < size; v++ {
			uid := n.UID(int32(v))
			if lbl, ok := raw[uint64(uid)]; ok {
				out[uid] = int64(lbl)
			} else {
				// Isolated vertex: never appeared in an edge, so it was
				// never contracted. Its own uid is already a unique label.
				out[uid] = uid
			}
		}
		return out, stats, nil
	}

	full := make(map[int64]uint64, size)
	for v := 0; v < size; v++ {
		uid := n.UID(int32(v))
		if lbl, ok := raw[uint64(uid)]; ok {
			full[uid] = lbl
		} else {
			full[uid] = uint64(uid)
		}
	}
	return Canonicalize(full), stats, nil
}

// buildEdges produces the initial symmetric, self-loop-free edge list
// and the set of vertex uids that have at least one such edge.
// Isolated vertices (self-loop only) never enter the contraction and
// are labelled directly by Run.
func buildEdges(n *core.Neighbors) ([]pair, map[uint64]struct{}) {
	touched := make(map[uint64]struct{})
	var edges []pair
	for v := int32(0); v < int32(n.Len()); v++ {
		vu := uint64(n.UID(v))
		for _, nb := range n.NeighborIndices(v) {
			if nb == v {
				continue
			}
			wu := uint64(n.UID(nb))
			edges = append(edges, pair{v: vu, w: wu})
			touched[vu] = struct{}{}
		}
	}
	return edges, touched
}

// contractLevel computes, for every vertex appearing in edges, its
// representative r(v) = min(h(v), min over neighbours w of h(w)),
// reporting the number of edges this level contracted to recorder.
func contractLevel(edges []pair, a, b uint64, recorder core.Recorder) map[uint64]uint64 {
	minNeighbour := make(map[uint64]uint64)
	for _, e := range edges {
		h := hashAffine(a, b, e.w)
		if cur, ok := minNeighbour[e.v]; !ok || h < cur {
			minNeighbour[e.v] = h
		}
	}

	rep := make(map[uint64]uint64, len(minNeighbour))
	for v, nbMin := range minNeighbour {
		hv := hashAffine(a, b, v)
		r := hv
		if nbMin < r {
			r = nbMin
		}
		rep[v] = r
	}
	recorder.Iteration(engineName, len(edges))
	return rep
}

// projectEdges rewrites every edge through rep, dropping self-loops
// that result and deduplicating.
func projectEdges(edges []pair, rep map[uint64]uint64) []pair {
	seen := make(map[pair]struct{})
	var out []pair
	for _, e := range edges {
		rv, rw := rep[e.v], rep[e.w]
		if rv == rw {
			continue
		}
		p := pair{v: rv, w: rw}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// liftLabels walks the level list top-down, composing each level's
// affine hash into a running map and producing, for every originally
// touched vertex, its final hash-derived label.
//
// The top level is seeded directly from its own rep table, unmodified:
// those values were already hashed once by that level's own contraction
// and no level sits above it to compose further, mirroring
// `randomised_contraction_fast.py`'s compose loop, which COALESCEs to
// the top table's raw r column rather than re-applying a hash to it.
func liftLabels(levels []level, touched map[uint64]struct{}) map[uint64]uint64 {
	if len(levels) == 0 {
		out := make(map[uint64]uint64, len(touched))
		for v := range touched {
			out[v] = v
		}
		return out
	}

	top := levels[len(levels)-1]
	l := make(map[uint64]uint64, len(top.rep))
	for v, rv := range top.rep {
		l[v] = rv
	}
	runA, runB := top.a, top.b

	for i := len(levels) - 2; i >= 0; i-- {
		lvl := levels[i]
		next := make(map[uint64]uint64, len(lvl.rep))
		for v, rv := range lvl.rep {
			if lbl, ok := l[rv]; ok {
				next[v] = lbl
			} else {
				next[v] = affineApply(runA, runB, rv)
			}
		}
		l = next
		runA, runB = composeAffine(runA, runB, lvl.a, lvl.b)
	}
	return l
}

// Canonicalize is the dense remapping chosen for Open Question 3 (RPC
// label uniqueness): raw hash-derived labels are injective with
// overwhelming probability but not guaranteed so. This remaps them to a
// dense label space, ordered by first occurrence when iterating vertex
// uids ascending, so the result is deterministic. Distinct raw labels
// always receive distinct dense labels; vertices that share a raw label
// share a dense label, so two components whose raw labels collide are
// not separated by this pass.
func Canonicalize(raw map[int64]uint64) map[int64]int64 {
	uids := make([]int64, 0, len(raw))
	for uid := range raw {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	assigned := make(map[uint64]int64, len(raw))
	out := make(map[int64]int64, len(raw))
	var next int64
	for _, uid := range uids {
		rawLabel := raw[uid]
		id, ok := assigned[rawLabel]
		if !ok {
			id = next
			assigned[rawLabel] = id
			next++
		}
		out[uid] = id
	}
	return out
}

func hashAffine(a, b, x uint64) uint64 {
	xr := x & mask32
	return (a*xr + b) & mask32
}

func affineApply(a, b, x uint64) uint64 {
	return hashAffine(a, b, x)
}

// composeAffine returns the coefficients of h_{outerA,outerB} ∘
// h_{innerA,innerB}, i.e. innerA,innerB applied first.
func composeAffine(outerA, outerB, innerA, innerB uint64) (uint64, uint64) {
	newA := (outerA * innerA) & mask32
	newB := ((outerA*innerB)&mask32 + outerB) & mask32
	return newA, newB
}

func drawSeed(rng *rand.Rand) (uint64, uint64) {
	a := uint64(rng.Int63n((1<<31)-1)) + 1
	b := uint64(rng.Int63n(1 << 32))
	return a, b
}
