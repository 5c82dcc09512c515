// Package validate is the Validation Harness (spec component F): it
// re-derives connected components by textbook traversal, independent
// of any engine in lpuf/activeset/rpc/hierarchical, and certifies that
// an engine's labelling induces the same partition.
//
// Grounded on `bfs.go`'s queue-based walker, generalised from a
// single-source search to a full-graph component sweep the way
// `dfs.go`'s WithFullTraversal mode covers a forest.
package validate

import "github.com/RobinL/clustergraph/core"

// BFSComponents computes connected components of n by breadth-first
// traversal, visiting unvisited vertices in ascending index order. The
// returned map is uid -> uid of the component's first-visited (root)
// vertex.
func BFSComponents(n *core.Neighbors) map[int64]int64 {
	size := n.Len()
	visited := make([]bool, size)
	labels := make(map[int64]int64, size)

	for start := int32(0); int(start) < size; start++ {
		if visited[start] {
			continue
		}
		root := n.UID(start)
		queue := []int32{start}
		visited[start] = true
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			labels[n.UID(v)] = root
			for _, nb := range n.NeighborIndices(v) {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return labels
}
