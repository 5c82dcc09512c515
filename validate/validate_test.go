package validate_test

import (
	"testing"

	"github.com/RobinL/clustergraph/core"
	"github.com/RobinL/clustergraph/lpuf"
	"github.com/RobinL/clustergraph/rpc"
	"github.com/RobinL/clustergraph/validate"
	"github.com/stretchr/testify/require"
)

func vset(uids ...int64) []core.Vertex {
	out := make([]core.Vertex, len(uids))
	for i, u := range uids {
		out[i] = core.Vertex{UID: u}
	}
	return out
}

func prep(t *testing.T, vs []core.Vertex, es []core.Edge, threshold float64) *core.Neighbors {
	t.Helper()
	n, err := core.Prepare(vs, es, threshold, false)
	require.NoError(t, err)
	return n
}

func TestBFSAndDFSAndDSUAgree(t *testing.T) {
	n := prep(t, vset(0, 1, 2, 3, 4), []core.Edge{
		{UIDL: 0, UIDR: 1, MatchProbability: 1},
		{UIDL: 1, UIDR: 2, MatchProbability: 1},
		{UIDL: 3, UIDR: 4, MatchProbability: 1},
	}, 0.5)

	report := validate.Validate(n, validate.BFSComponents(n))
	require.True(t, report.Agrees)
	require.Empty(t, report.Mismatches)
}

func TestValidate_LPUFAgreesWithHarness(t *testing.T) {
	n := prep(t, vset(0, 1, 2, 3, 4, 5), []core.Edge{
		{UIDL: 0, UIDR: 1, MatchProbability: 0.9},
		{UIDL: 1, UIDR: 2, MatchProbability: 0.9},
		{UIDL: 4, UIDR: 5, MatchProbability: 0.9},
	}, 0.5)
	labels, _, err := lpuf.Run(n)
	require.NoError(t, err)

	report := validate.Validate(n, labels)
	require.True(t, report.Agrees)
}

func TestValidate_RPCAgreesWithHarness(t *testing.T) {
	n := prep(t, vset(0, 1, 2, 3, 4, 5), []core.Edge{
		{UIDL: 0, UIDR: 1, MatchProbability: 0.9},
		{UIDL: 1, UIDR: 2, MatchProbability: 0.9},
		{UIDL: 4, UIDR: 5, MatchProbability: 0.9},
	}, 0.5)
	labels, _, err := rpc.Run(n, rpc.WithSeed(11))
	require.NoError(t, err)

	report := validate.Validate(n, labels)
	require.True(t, report.Agrees)
}

func TestValidate_DetectsDisagreement(t *testing.T) {
	n := prep(t, vset(0, 1, 2, 3), []core.Edge{
		{UIDL: 0, UIDR: 1, MatchProbability: 0.9},
		{UIDL: 2, UIDR: 3, MatchProbability: 0.9},
	}, 0.5)

	// Deliberately wrong: everyone forced into one cluster.
	wrong := map[int64]int64{0: 0, 1: 0, 2: 0, 3: 0}

	report := validate.Validate(n, wrong)
	require.False(t, report.Agrees)
	require.NotEmpty(t, report.Mismatches)
}

func TestDSUComponents_SelfLoopsDoNotMerge(t *testing.T) {
	n := prep(t, vset(0, 1), nil, 0.5)
	labels := validate.DSUComponents(n)
	require.NotEqual(t, labels[0], labels[1])
}
