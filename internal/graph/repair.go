package graph

import "math"

// Connectivity repair for the geographical variant. Repair only ever adds
// edges, and it ignores the degree cap: restoring a single component takes
// priority over degree exactness.

// repairIsolated connects every zero-degree node to its nearest node that
// already has at least one neighbor, by squared distance. Returns the number
// of edges added.
func repairIsolated(b *builder) int {
	added := 0
	for i := 0; i < b.n; i++ {
		if b.degree(i) != 0 {
			continue
		}
		best := -1
		bestSq := math.Inf(1)
		for j := 0; j < b.n; j++ {
			if j == i || b.degree(j) == 0 {
				continue
			}
			if sq := b.pos[i].sqDistTo(b.pos[j]); sq < bestSq {
				bestSq = sq
				best = j
			}
		}
		if best >= 0 && b.addEdge(i, best) {
			added++
		}
	}
	return added
}

// componentsOf returns the connected components of the builder's adjacency,
// each as a sorted id list, discovered by breadth-first traversal from the
// lowest unvisited id.
func componentsOf(adj [][]int) [][]int {
	n := len(adj)
	visited := make([]bool, n)
	var comps [][]int

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		comp := []int{start}
		visited[start] = true
		for head := 0; head < len(comp); head++ {
			for _, next := range adj[comp[head]] {
				if !visited[next] {
					visited[next] = true
					comp = append(comp, next)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// repairComponents merges all components into one: the largest component is
// connected to each remaining component via the closest cross-component node
// pair. Each merge adds exactly one edge. Returns the number of merges.
func repairComponents(b *builder) int {
	comps := componentsOf(b.adj)
	if len(comps) <= 1 {
		return 0
	}

	largest := 0
	for k := 1; k < len(comps); k++ {
		if len(comps[k]) > len(comps[largest]) {
			largest = k
		}
	}

	merges := 0
	for k, comp := range comps {
		if k == largest {
			continue
		}
		bestU, bestV := -1, -1
		bestSq := math.Inf(1)
		for _, u := range comps[largest] {
			for _, v := range comp {
				if sq := b.pos[u].sqDistTo(b.pos[v]); sq < bestSq {
					bestSq = sq
					bestU, bestV = u, v
				}
			}
		}
		if bestU >= 0 && b.addEdge(bestU, bestV) {
			merges++
		}
	}
	return merges
}
