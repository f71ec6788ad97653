// Package graph builds the synthetic networks that message propagation runs
// over. A network is generated in one pass from a seeded random stream:
// positions first, then edges under either a ring-lattice small-world model
// or a geography-aware probabilistic model, then a connectivity repair pass.
package graph

import "math"

// Node is a single network participant. Positions are assigned once at
// generation and never move afterwards.
type Node struct {
	ID        int     `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Neighbors []int   `json:"neighbors"`
}

// Edge is an unordered pair of distinct node ids, stored with A < B so the
// edge list is the canonical undirected set.
type Edge struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Network is the complete node/edge collection for one generation run.
// It is owned exclusively by the run that created it and replaced wholesale
// on each new generation.
type Network struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Size returns the number of nodes.
func (n *Network) Size() int { return len(n.Nodes) }

// Distance returns the Euclidean distance between nodes i and j.
func (n *Network) Distance(i, j int) float64 {
	dx := n.Nodes[i].X - n.Nodes[j].X
	dy := n.Nodes[i].Y - n.Nodes[j].Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AverageDegree returns 2E/N, or 0 for an empty network.
func (n *Network) AverageDegree() float64 {
	if len(n.Nodes) == 0 {
		return 0
	}
	return 2 * float64(len(n.Edges)) / float64(len(n.Nodes))
}

// point is a 2-D position used during generation, index-aligned with node ids.
type point struct {
	x, y float64
}

func (p point) distTo(q point) float64 {
	dx := p.x - q.x
	dy := p.y - q.y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p point) sqDistTo(q point) float64 {
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

// builder accumulates adjacency during synthesis and repair. The connection
// matrix is a transient arena: it answers "are i and j connected" in O(1)
// and is discarded once the Network is assembled.
type builder struct {
	n      int
	pos    []point
	adj    [][]int
	edges  []Edge
	matrix *connMatrix
}

func newBuilder(n int, pos []point) *builder {
	return &builder{
		n:      n,
		pos:    pos,
		adj:    make([][]int, n),
		edges:  make([]Edge, 0, n),
		matrix: newConnMatrix(n),
	}
}

func (b *builder) connected(i, j int) bool {
	return b.matrix.connected(i, j)
}

func (b *builder) degree(i int) int {
	return len(b.adj[i])
}

// addEdge records an undirected edge in both adjacency lists, the matrix and
// the edge list. Self-loops and duplicates are rejected.
func (b *builder) addEdge(i, j int) bool {
	if i == j || b.matrix.connected(i, j) {
		return false
	}
	b.matrix.set(i, j)
	b.adj[i] = append(b.adj[i], j)
	b.adj[j] = append(b.adj[j], i)
	if i < j {
		b.edges = append(b.edges, Edge{A: i, B: j})
	} else {
		b.edges = append(b.edges, Edge{A: j, B: i})
	}
	return true
}

// removeEdge drops an existing undirected edge from all three structures.
// Only the lattice rewiring pass removes edges; repair never does.
func (b *builder) removeEdge(i, j int) {
	if !b.matrix.connected(i, j) {
		return
	}
	b.matrix.clear(i, j)
	b.adj[i] = removeID(b.adj[i], j)
	b.adj[j] = removeID(b.adj[j], i)

	a, c := i, j
	if a > c {
		a, c = c, a
	}
	for k, e := range b.edges {
		if e.A == a && e.B == c {
			b.edges = append(b.edges[:k], b.edges[k+1:]...)
			break
		}
	}
}

func removeID(ids []int, id int) []int {
	for k, v := range ids {
		if v == id {
			return append(ids[:k], ids[k+1:]...)
		}
	}
	return ids
}

// network assembles the final Network value. The builder (and its matrix
// arena) must not be used afterwards.
func (b *builder) network() *Network {
	nodes := make([]Node, b.n)
	for i := 0; i < b.n; i++ {
		nodes[i] = Node{
			ID:        i,
			X:         b.pos[i].x,
			Y:         b.pos[i].y,
			Neighbors: b.adj[i],
		}
	}
	return &Network{Nodes: nodes, Edges: b.edges}
}
