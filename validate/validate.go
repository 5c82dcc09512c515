package validate

import (
	"sort"

	"github.com/RobinL/clustergraph/core"
)

const maxReportedMismatches = 20

// Validate checks an engine's labelling against three independent
// reference traversals over the same neighbour relation (spec §4.F).
// Two labellings are equal iff for every pair (u,v), L(u)=L(v) iff
// L_ref(u)=L_ref(v) — implemented as: group by engine label, the set
// of reference labels per group must have exactly one distinct value,
// and symmetrically the other way.
func Validate(n *core.Neighbors, engineLabels map[int64]int64) Report {
	bfsLabels := BFSComponents(n)
	dfsLabels := DFSComponents(n)
	dsuLabels := DSUComponents(n)

	agrees := true
	var mismatches []Mismatch
	for _, ref := range []map[int64]int64{bfsLabels, dfsLabels, dsuLabels} {
		if !partitionsEqual(engineLabels, ref) {
			agrees = false
			mismatches = append(mismatches, diagnosePairs(engineLabels, ref)...)
		}
	}

	return Report{
		Agrees:     agrees,
		Mismatches: mismatches,
		BFSLabels:  bfsLabels,
		DFSLabels:  dfsLabels,
		DSULabels:  dsuLabels,
	}
}

// partitionsEqual implements spec §4.F's grouping check in O(n): group
// by a's label and require every member to agree on b's label, then
// symmetrically the other way.
func partitionsEqual(a, b map[int64]int64) bool {
	if len(a) != len(b) {
		return false
	}
	groupA := make(map[int64]int64, len(a))
	for uid, ca := range a {
		cb, ok := b[uid]
		if !ok {
			return false
		}
		if got, seen := groupA[ca]; seen {
			if got != cb {
				return false
			}
		} else {
			groupA[ca] = cb
		}
	}
	groupB := make(map[int64]int64, len(b))
	for uid, cb := range b {
		ca := a[uid]
		if got, seen := groupB[cb]; seen {
			if got != ca {
				return false
			}
		} else {
			groupB[cb] = ca
		}
	}
	return true
}

// diagnosePairs does a bounded pairwise scan to surface concrete
// mismatching vertex pairs once partitionsEqual has already found a
// disagreement; it is not the correctness check itself.
func diagnosePairs(a, b map[int64]int64) []Mismatch {
	uids := make([]int64, 0, len(a))
	for uid := range a {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	var mismatches []Mismatch
	for i := 0; i < len(uids) && len(mismatches) < maxReportedMismatches; i++ {
		for j := i + 1; j < len(uids) && len(mismatches) < maxReportedMismatches; j++ {
			u, v := uids[i], uids[j]
			sameA := a[u] == a[v]
			sameB := b[u] == b[v]
			if sameA != sameB {
				mismatches = append(mismatches, Mismatch{UIDA: u, UIDB: v, InEngine: sameA})
			}
		}
	}
	return mismatches
}
