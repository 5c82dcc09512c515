package rpc_test

import (
	"testing"

	"github.com/RobinL/clustergraph/core"
	"github.com/RobinL/clustergraph/lpuf"
	"github.com/RobinL/clustergraph/rpc"
	"github.com/stretchr/testify/require"
)

func prep(t *testing.T, vs []core.Vertex, es []core.Edge, threshold float64) *core.Neighbors {
	t.Helper()
	n, err := core.Prepare(vs, es, threshold, false)
	require.NoError(t, err)
	return n
}

func vset(uids ...int64) []core.Vertex {
	out := make([]core.Vertex, len(uids))
	for i, u := range uids {
		out[i] = core.Vertex{UID: u}
	}
	return out
}

// partitionsAgree checks that a and b induce the same equivalence
// classes over the same key set, independent of actual label values.
func partitionsAgree(t *testing.T, a, b map[int64]int64) {
	t.Helper()
	require.Equal(t, len(a), len(b))
	groupA := map[int64][]int64{}
	for uid, lbl := range a {
		groupA[lbl] = append(groupA[lbl], uid)
	}
	groupB := map[int64][]int64{}
	for uid, lbl := range b {
		groupB[lbl] = append(groupB[lbl], uid)
	}

	seen := map[int64]bool{}
	for uid, lblA := range a {
		if seen[uid] {
			continue
		}
		membersA := groupA[lblA]
		lblB := b[uid]
		membersB := groupB[lblB]
		require.ElementsMatch(t, membersA, membersB, "uid %d: component membership mismatch", uid)
		for _, m := range membersA {
			seen[m] = true
		}
	}
}

func TestRun_SingleEdge(t *testing.T) {
	n := prep(t, vset(0, 1), []core.Edge{{UIDL: 0, UIDR: 1, MatchProbability: 0.9}}, 0.5)
	labels, stats, err := rpc.Run(n, rpc.WithSeed(7))
	require.NoError(t, err)
	require.Equal(t, labels[0], labels[1])
	require.GreaterOrEqual(t, stats.Levels, 1)
}

func TestRun_ThresholdFiltersEdge(t *testing.T) {
	n := prep(t, vset(0, 1), []core.Edge{{UIDL: 0, UIDR: 1, MatchProbability: 0.4}}, 0.5)
	labels, _, err := rpc.Run(n, rpc.WithSeed(7))
	require.NoError(t, err)
	require.NotEqual(t, labels[0], labels[1])
}

// Property 4 (engine agreement): RPC induces the same partition as
// LPUF even though its labels differ.
func TestRun_AgreesWithLPUF(t *testing.T) {
	uids := []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	edges := []core.Edge{
		{UIDL: 0, UIDR: 1, MatchProbability: 1},
		{UIDL: 1, UIDR: 2, MatchProbability: 1},
		{UIDL: 2, UIDR: 3, MatchProbability: 1},
		{UIDL: 5, UIDR: 6, MatchProbability: 1},
		{UIDL: 6, UIDR: 7, MatchProbability: 1},
		// 4, 8, 9 isolated
	}
	n := prep(t, vset(uids...), edges, 0.5)

	want, _, err := lpuf.Run(n)
	require.NoError(t, err)
	got, _, err := rpc.Run(n, rpc.WithSeed(123))
	require.NoError(t, err)
	partitionsAgree(t, want, got)
}

func TestRun_EmptyGraph(t *testing.T) {
	n := prep(t, nil, nil, 0.5)
	labels, stats, err := rpc.Run(n)
	require.NoError(t, err)
	require.Empty(t, labels)
	require.Equal(t, 0, stats.Levels)
}

func TestRun_IsolatedVertex(t *testing.T) {
	n := prep(t, vset(0, 1, 2), []core.Edge{{UIDL: 0, UIDR: 1, MatchProbability: 1}}, 0.5)
	labels, _, err := rpc.Run(n, rpc.WithSeed(9))
	require.NoError(t, err)
	require.Equal(t, labels[0], labels[1])
	require.NotEqual(t, labels[2], labels[0])
}

// Property 7: canonicalised labels are dense and unique per component.
func TestRun_CanonicalizeIsDense(t *testing.T) {
	uids := []int64{10, 20, 30, 40}
	edges := []core.Edge{
		{UIDL: 10, UIDR: 20, MatchProbability: 1},
		{UIDL: 30, UIDR: 40, MatchProbability: 1},
	}
	n := prep(t, vset(uids...), edges, 0.5)
	labels, _, err := rpc.Run(n, rpc.WithSeed(5))
	require.NoError(t, err)

	distinct := map[int64]bool{}
	for _, l := range labels {
		distinct[l] = true
	}
	require.Len(t, distinct, 2)
	for l := range distinct {
		require.GreaterOrEqual(t, l, int64(0))
		require.Less(t, l, int64(2))
	}
}

// Determinism: same seed, same input, same output.
func TestRun_DeterministicGivenSeed(t *testing.T) {
	n := prep(t, vset(3, 1, 4, 1_000), []core.Edge{
		{UIDL: 3, UIDR: 1, MatchProbability: 0.8},
		{UIDL: 1, UIDR: 4, MatchProbability: 0.8},
	}, 0.5)
	a, _, err := rpc.Run(n, rpc.WithSeed(42))
	require.NoError(t, err)
	b, _, err := rpc.Run(n, rpc.WithSeed(42))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestCanonicalize_OrdersByFirstOccurrence(t *testing.T) {
	raw := map[int64]uint64{
		5: 9000,
		1: 9000,
		2: 42,
	}
	out := rpc.Canonicalize(raw)
	// Ascending uid order is 1, 2, 5: uid 1 (raw 9000) seen first -> 0,
	// uid 2 (raw 42) seen second -> 1, uid 5 shares uid 1's raw label.
	require.Equal(t, int64(0), out[1])
	require.Equal(t, int64(1), out[2])
	require.Equal(t, int64(0), out[5])
}
