package validate

import "github.com/RobinL/clustergraph/core"

// DSUComponents computes connected components of n using a classic
// rank-based disjoint-set union with path compression, grounded on
// `prim_kruskal.Kruskal`'s DSU. This is the one place in the module a
// serial union-find by rank is permitted: strictly as an independent
// cross-check here, never as a core clustering engine.
func DSUComponents(n *core.Neighbors) map[int64]int64 {
	size := n.Len()
	parent := make([]int32, size)
	rank := make([]int, size)
	for i := range parent {
		parent[i] = int32(i)
	}

	var find func(int32) int32
	find = func(v int32) int32 {
		for parent[v] != v {
			parent[v] = parent[parent[v]]
			v = parent[v]
		}
		return v
	}
	union := func(a, b int32) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if rank[ra] < rank[rb] {
			ra, rb = rb, ra
		}
		parent[rb] = ra
		if rank[ra] == rank[rb] {
			rank[ra]++
		}
	}

	for v := int32(0); int(v) < size; v++ {
		for _, nb := range n.NeighborIndices(v) {
			union(v, nb)
		}
	}

	labels := make(map[int64]int64, size)
	for v := int32(0); int(v) < size; v++ {
		root := find(v)
		labels[n.UID(v)] = n.UID(root)
	}
	return labels
}
