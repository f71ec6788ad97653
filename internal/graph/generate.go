package graph

import (
	"fmt"
	"log/slog"

	"github.com/glucoxe/netspread/internal/logging"
	"github.com/glucoxe/netspread/internal/rng"
)

// Variant selects the synthesis algorithm. The two variants share nothing
// beyond node count and the random stream, so the choice is a tag checked
// once at the start of generation.
type Variant int

const (
	// VariantLattice is the ring-lattice small-world model.
	VariantLattice Variant = iota
	// VariantGeo is the geography-aware probabilistic model.
	VariantGeo
)

// Params are the inputs to one generation run.
type Params struct {
	TotalNodes         int
	ConnectionsPerNode int
	Variant            Variant

	// Geo is only consulted when Variant is VariantGeo.
	Geo GeoOptions
}

// Report carries the non-fatal diagnostics of a generation run: degenerate
// placements, degree-cap conflicts and repair outcomes. None of these abort
// generation; they are logged and surfaced to the caller.
type Report struct {
	PlacementCollisions int   `json:"placement_collisions"`
	DegreeCapConflicts  int   `json:"degree_cap_conflicts"`
	CapExceeded         []int `json:"cap_exceeded,omitempty"`
	IsolatedRepaired    int   `json:"isolated_repaired"`
	ComponentsMerged    int   `json:"components_merged"`
	Connected           bool  `json:"connected"`
}

// Generate builds a network from the given parameters and random stream.
// Positions are generated for both variants (propagation ordering needs
// geometry even over a lattice network); connectivity repair runs only for
// the geographical variant.
//
// Range validation of externally supplied parameters belongs to the config
// layer; Generate itself only rejects parameters it cannot compute with, so
// tests and embedders may build degenerate networks (down to a single node).
func Generate(p Params, stream *rng.Stream, logger *slog.Logger, trace *logging.TraceLogger) (*Network, *Report, error) {
	if p.TotalNodes < 0 {
		return nil, nil, fmt.Errorf("generate: total nodes must be non-negative, got %d", p.TotalNodes)
	}
	if p.ConnectionsPerNode < 0 {
		return nil, nil, fmt.Errorf("generate: connections per node must be non-negative, got %d", p.ConnectionsPerNode)
	}
	if p.Variant == VariantGeo && p.Geo.MaxConnectionDistance <= 0 {
		return nil, nil, fmt.Errorf("generate: max connection distance must be positive, got %f", p.Geo.MaxConnectionDistance)
	}

	report := &Report{}

	positions, collisions := generatePositions(p.TotalNodes, stream)
	report.PlacementCollisions = collisions
	if collisions > 0 {
		logger.Warn("placement collisions unresolved after attempt budget",
			"count", collisions, "nodes", p.TotalNodes)
		trace.Log(map[string]any{
			"event": "placement_collisions",
			"count": collisions,
		})
	}

	b := newBuilder(p.TotalNodes, positions)

	switch p.Variant {
	case VariantGeo:
		report.DegreeCapConflicts = synthesizeGeo(b, p.ConnectionsPerNode, p.Geo, stream)
		if report.DegreeCapConflicts > 0 {
			logger.Debug("degree-cap conflicts during synthesis",
				"count", report.DegreeCapConflicts)
		}
	default:
		synthesizeLattice(b, p.ConnectionsPerNode, stream)
	}

	// Cap excess is detected and reported, never prevented. For the
	// lattice variant it is the usual outcome: rewiring reattaches edges
	// to uniformly random targets with no cap filter.
	for i := 0; i < b.n; i++ {
		if b.degree(i) > p.ConnectionsPerNode {
			report.CapExceeded = append(report.CapExceeded, i)
		}
	}
	if len(report.CapExceeded) > 0 {
		if p.Variant == VariantLattice {
			logger.Debug("degree cap exceeded by rewiring",
				"nodes", len(report.CapExceeded), "cap", p.ConnectionsPerNode)
		} else {
			logger.Warn("degree cap exceeded after synthesis",
				"nodes", len(report.CapExceeded), "cap", p.ConnectionsPerNode)
		}
	}

	if p.Variant == VariantGeo {
		report.IsolatedRepaired = repairIsolated(b)
		report.ComponentsMerged = repairComponents(b)
		if report.IsolatedRepaired > 0 || report.ComponentsMerged > 0 {
			trace.Log(map[string]any{
				"event":             "connectivity_repair",
				"isolated_repaired": report.IsolatedRepaired,
				"components_merged": report.ComponentsMerged,
			})
		}
	}

	report.Connected = len(componentsOf(b.adj)) <= 1
	if !report.Connected {
		logger.Warn("network still disconnected after generation",
			"variant", p.Variant, "nodes", p.TotalNodes)
	}

	net := b.network()
	logger.Info("network generated",
		"nodes", len(net.Nodes),
		"edges", len(net.Edges),
		"avg_degree", net.AverageDegree(),
		"connected", report.Connected)

	return net, report, nil
}
