package validate

import "github.com/RobinL/clustergraph/core"

// DFSComponents computes connected components of n by depth-first
// traversal with an explicit stack (no recursion, so depth is bounded
// only by available memory), covering the full vertex set the way
// dfs.go's WithFullTraversal mode covers a forest. The returned map is
// uid -> uid of the component's first-visited (root) vertex.
func DFSComponents(n *core.Neighbors) map[int64]int64 {
	size := n.Len()
	visited := make([]bool, size)
	labels := make(map[int64]int64, size)

	for start := int32(0); int(start) < size; start++ {
		if visited[start] {
			continue
		}
		root := n.UID(start)
		stack := []int32{start}
		visited[start] = true
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			labels[n.UID(v)] = root
			for _, nb := range n.NeighborIndices(v) {
				if !visited[nb] {
					visited[nb] = true
					stack = append(stack, nb)
				}
			}
		}
	}
	return labels
}
