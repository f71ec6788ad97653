package graph

// Properties summarizes the structural metrics of a generated network,
// matching what the analysis reports surface: edge totals, degree spread,
// density and connectivity.
type Properties struct {
	Nodes         int     `json:"nodes"`
	Edges         int     `json:"edges"`
	AverageDegree float64 `json:"average_degree"`
	MinDegree     int     `json:"min_degree"`
	MaxDegree     int     `json:"max_degree"`
	Density       float64 `json:"density"`
	Components    int     `json:"components"`
	Connected     bool    `json:"connected"`
}

// Properties computes structural metrics via a breadth-first component scan.
func (n *Network) Properties() Properties {
	p := Properties{
		Nodes:         len(n.Nodes),
		Edges:         len(n.Edges),
		AverageDegree: n.AverageDegree(),
	}
	if p.Nodes == 0 {
		return p
	}

	p.MinDegree = len(n.Nodes[0].Neighbors)
	for _, node := range n.Nodes {
		d := len(node.Neighbors)
		if d < p.MinDegree {
			p.MinDegree = d
		}
		if d > p.MaxDegree {
			p.MaxDegree = d
		}
	}

	if p.Nodes > 1 {
		p.Density = 2 * float64(p.Edges) / (float64(p.Nodes) * float64(p.Nodes-1))
	}

	adj := make([][]int, len(n.Nodes))
	for i, node := range n.Nodes {
		adj[i] = node.Neighbors
	}
	p.Components = len(componentsOf(adj))
	p.Connected = p.Components == 1

	return p
}
