package lpuf_test

import (
	"context"
	"testing"

	"github.com/RobinL/clustergraph/core"
	"github.com/RobinL/clustergraph/lpuf"
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

// S1: single edge, both labelled the minimum uid.
func TestRun_SingleEdge(t *testing.T) {
	n := prep(t, vset(0, 1), []core.Edge{{UIDL: 0, UIDR: 1, MatchProbability: 0.9}}, 0.5)
	labels, _, err := lpuf.Run(n)
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{0: 0, 1: 0}, labels)
}

// S2: threshold filters the edge out entirely, two singletons.
func TestRun_ThresholdFiltersEdge(t *testing.T) {
	n := prep(t, vset(0, 1), []core.Edge{{UIDL: 0, UIDR: 1, MatchProbability: 0.4}}, 0.5)
	labels, _, err := lpuf.Run(n)
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{0: 0, 1: 1}, labels)
}

// S3: a chain of 10 vertices all converge to label 0.
func TestRun_Chain(t *testing.T) {
	uids := []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	var edges []core.Edge
	for i := 0; i < len(uids)-1; i++ {
		edges = append(edges, core.Edge{UIDL: uids[i], UIDR: uids[i+1], MatchProbability: 1.0})
	}
	n := prep(t, vset(uids...), edges, 0.5)
	labels, _, err := lpuf.Run(n)
	require.NoError(t, err)
	for _, u := range uids {
		require.Equal(t, int64(0), labels[u])
	}
}

// S4: two disjoint components, the path 0-1-2 and the edge 3-4.
func TestRun_TwoComponents(t *testing.T) {
	n := prep(t, vset(0, 1, 2, 3, 4), []core.Edge{
		{UIDL: 0, UIDR: 1, MatchProbability: 0.9},
		{UIDL: 1, UIDR: 2, MatchProbability: 0.9},
		{UIDL: 3, UIDR: 4, MatchProbability: 0.9},
	}, 0.5)
	labels, _, err := lpuf.Run(n)
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{0: 0, 1: 0, 2: 0, 3: 3, 4: 3}, labels)
}

// Property 2: every label equals min(component).
func TestRun_MinIDLabel(t *testing.T) {
	n := prep(t, vset(5, 2, 9, 1), []core.Edge{
		{UIDL: 5, UIDR: 2, MatchProbability: 1},
		{UIDL: 2, UIDR: 9, MatchProbability: 1},
		{UIDL: 9, UIDR: 1, MatchProbability: 1},
	}, 0.5)
	labels, _, err := lpuf.Run(n)
	require.NoError(t, err)
	for _, l := range labels {
		require.Equal(t, int64(1), l)
	}
}

// Property 3: idempotence — running again on a graph induced by the
// output (a complete graph per cluster) returns the same partition.
func TestRun_Idempotent(t *testing.T) {
	n := prep(t, vset(0, 1, 2, 3), []core.Edge{
		{UIDL: 0, UIDR: 1, MatchProbability: 1},
		{UIDL: 2, UIDR: 3, MatchProbability: 1},
	}, 0.5)
	first, _, err := lpuf.Run(n)
	require.NoError(t, err)

	var complete []core.Edge
	for u, lu := range first {
		for v, lv := range first {
			if u != v && lu == lv {
				complete = append(complete, core.Edge{UIDL: u, UIDR: v, MatchProbability: 1})
			}
		}
	}
	n2 := prep(t, vset(0, 1, 2, 3), complete, 0.5)
	second, _, err := lpuf.Run(n2)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// Property 8: adding explicit redundant self-loops never changes output.
func TestRun_SelfLoopInvariance(t *testing.T) {
	base := prep(t, vset(0, 1), []core.Edge{{UIDL: 0, UIDR: 1, MatchProbability: 1}}, 0.5)
	withLoops := prep(t, vset(0, 1), []core.Edge{
		{UIDL: 0, UIDR: 1, MatchProbability: 1},
		{UIDL: 0, UIDR: 0, MatchProbability: 1},
		{UIDL: 1, UIDR: 1, MatchProbability: 1},
	}, 0.5)
	l1, _, err := lpuf.Run(base)
	require.NoError(t, err)
	l2, _, err := lpuf.Run(withLoops)
	require.NoError(t, err)
	require.Equal(t, l1, l2)
}

func TestRun_EmptyGraph(t *testing.T) {
	n := prep(t, nil, nil, 0.5)
	labels, stats, err := lpuf.Run(n)
	require.NoError(t, err)
	require.Empty(t, labels)
	require.Equal(t, 0, stats.Iterations)
}

func TestRun_IterationBudgetExceeded(t *testing.T) {
	uids := make([]int64, 50)
	var edges []core.Edge
	for i := range uids {
		uids[i] = int64(i)
		if i > 0 {
			edges = append(edges, core.Edge{UIDL: int64(i - 1), UIDR: int64(i), MatchProbability: 1})
		}
	}
	n := prep(t, vset(uids...), edges, 0.5)
	_, _, err := lpuf.Run(n, lpuf.WithMaxIterations(1))

	var budgetErr *lpuf.BudgetExceededError
	require.ErrorAs(t, err, &budgetErr)
	require.Equal(t, 1, budgetErr.Iterations)
	require.NotEmpty(t, budgetErr.LastRepresentatives)
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := prep(t, vset(0, 1), []core.Edge{{UIDL: 0, UIDR: 1, MatchProbability: 1}}, 0.5)
	_, _, err := lpuf.Run(n, lpuf.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

// Determinism: repeated runs over the same input agree exactly.
func TestRun_Deterministic(t *testing.T) {
	n := prep(t, vset(3, 1, 4, 1_000), []core.Edge{
		{UIDL: 3, UIDR: 1, MatchProbability: 0.8},
		{UIDL: 1, UIDR: 4, MatchProbability: 0.8},
	}, 0.5)
	a, _, err := lpuf.Run(n)
	require.NoError(t, err)
	b, _, err := lpuf.Run(n)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
