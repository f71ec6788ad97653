package graph

import "github.com/glucoxe/netspread/internal/rng"

// rewireFraction is the share of lattice edges that get rewired to a random
// non-adjacent target, turning the ring lattice into a small-world network.
const rewireFraction = 0.3

// synthesizeLattice connects each node to its degree/2 nearest ring
// neighbors on each side, then rewires a fixed fraction of the edges:
// the edge is dropped and its first endpoint reattached to a uniformly
// random non-adjacent node. Positions play no part here.
func synthesizeLattice(b *builder, degree int, stream *rng.Stream) {
	n := b.n
	k := degree / 2

	for i := 0; i < n; i++ {
		for j := 1; j <= k; j++ {
			b.addEdge(i, (i+j)%n)
		}
	}

	// Select the rewire set against a snapshot so edges added while
	// rewiring are never themselves candidates.
	snapshot := make([]Edge, len(b.edges))
	copy(snapshot, b.edges)

	var rewire []Edge
	for _, e := range snapshot {
		if stream.Float64() < rewireFraction {
			rewire = append(rewire, e)
		}
	}

	for _, e := range rewire {
		b.removeEdge(e.A, e.B)

		var targets []int
		for t := 0; t < n; t++ {
			if t != e.A && !b.connected(e.A, t) {
				targets = append(targets, t)
			}
		}
		if len(targets) == 0 {
			continue
		}
		b.addEdge(e.A, targets[stream.Intn(len(targets))])
	}
}
