// Package graphgen produces synthetic graph fixtures for this
// module's own tests. It is never imported outside the module: random
// graph generation is an external collaborator to the clustering core
// itself (spec.md's Non-goals place it outside scope), but a complete
// implementation still needs fixtures to exercise chain-shaped and
// densely-random inputs the way the corpus's hand-written scenarios
// (S1-S6) cannot cover alone.
//
// Grounded on `generate_random_graphs.py`'s generate_chain_graph and
// generate_uniform_probability_graph, reimplemented with math/rand
// instead of Python's random module and seeded explicitly by the caller.
package graphgen

import (
	"math/rand"

	"github.com/RobinL/clustergraph/core"
)

// ChainGraph returns n vertices {0,...,n-1} connected in a single
// path, mirroring networkx's path_graph. Every edge has
// MatchProbability 1.0.
func ChainGraph(n int) ([]core.Vertex, []core.Edge) {
	vertices := make([]core.Vertex, n)
	for i := 0; i < n; i++ {
		vertices[i] = core.Vertex{UID: int64(i)}
	}
	var edges []core.Edge
	for i := 0; i < n-1; i++ {
		edges = append(edges, core.Edge{UIDL: int64(i), UIDR: int64(i + 1), MatchProbability: 1.0})
	}
	return vertices, edges
}

// UniformProbabilityGraph returns n vertices {0,...,n-1} and at most
// numEdges edges: numEdges uniformly-random endpoint pairs are drawn and
// pairs whose two endpoints coincide are dropped, so every returned edge
// has distinct endpoints. Each edge carries a uniformly-random match
// probability in [0,1), mirroring generate_uniform_probability_graph.
// Deterministic for a given seed.
func UniformProbabilityGraph(n, numEdges int, seed int64) ([]core.Vertex, []core.Edge) {
	rng := rand.New(rand.NewSource(seed))

	vertices := make([]core.Vertex, n)
	for i := 0; i < n; i++ {
		vertices[i] = core.Vertex{UID: int64(i)}
	}

	edges := make([]core.Edge, 0, numEdges)
	for i := 0; i < numEdges; i++ {
		l := rng.Intn(n)
		r := rng.Intn(n)
		if l == r {
			continue
		}
		edges = append(edges, core.Edge{
			UIDL:             int64(l),
			UIDR:             int64(r),
			MatchProbability: rng.Float64(),
		})
	}
	return vertices, edges
}
