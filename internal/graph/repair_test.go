package graph

import "testing"

// gridBuilder lays nodes on a horizontal line 100px apart with no edges.
func gridBuilder(n int) *builder {
	pos := make([]point, n)
	for i := range pos {
		pos[i] = point{x: float64(i) * 100, y: 0}
	}
	return newBuilder(n, pos)
}

func TestRepairIsolated(t *testing.T) {
	b := gridBuilder(4)
	b.addEdge(0, 1)
	// Nodes 2 and 3 are isolated; node 2's nearest connected node is 1.

	added := repairIsolated(b)

	if added != 2 {
		t.Errorf("repairIsolated added %d edges, want 2", added)
	}
	if !b.connected(2, 1) {
		t.Error("node 2 not attached to its nearest connected node 1")
	}
	// Node 3 attaches to node 2, which gained a neighbor in this same pass.
	if b.degree(3) != 1 {
		t.Errorf("node 3 degree = %d, want 1", b.degree(3))
	}
}

func TestRepairIsolatedNoCandidates(t *testing.T) {
	// Every node isolated: nothing has a neighbor to attach to.
	b := gridBuilder(3)
	if added := repairIsolated(b); added != 0 {
		t.Errorf("repairIsolated added %d edges with no connected nodes", added)
	}
}

func TestComponentsOf(t *testing.T) {
	b := gridBuilder(6)
	b.addEdge(0, 1)
	b.addEdge(1, 2)
	b.addEdge(3, 4)

	comps := componentsOf(b.adj)
	if len(comps) != 3 {
		t.Fatalf("got %d components, want 3", len(comps))
	}
	// Discovery starts from the lowest unvisited id.
	if comps[0][0] != 0 || comps[1][0] != 3 || comps[2][0] != 5 {
		t.Errorf("component roots = %d, %d, %d, want 0, 3, 5",
			comps[0][0], comps[1][0], comps[2][0])
	}
}

func TestRepairComponents(t *testing.T) {
	b := gridBuilder(6)
	// Largest component {0,1,2}, plus {3,4} and the singleton {5}.
	b.addEdge(0, 1)
	b.addEdge(1, 2)
	b.addEdge(3, 4)

	merges := repairComponents(b)

	if merges != 2 {
		t.Errorf("repairComponents merged %d, want 2", merges)
	}
	if comps := componentsOf(b.adj); len(comps) != 1 {
		t.Errorf("still %d components after repair", len(comps))
	}
	// The closest cross-pair between {0,1,2} and {3,4} is 2-3.
	if !b.connected(2, 3) {
		t.Error("components not joined at the closest cross-pair 2-3")
	}
}

func TestRepairComponentsAlreadyConnected(t *testing.T) {
	b := gridBuilder(3)
	b.addEdge(0, 1)
	b.addEdge(1, 2)

	if merges := repairComponents(b); merges != 0 {
		t.Errorf("repairComponents merged %d on a connected graph", merges)
	}
}
