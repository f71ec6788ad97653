package simulation

import (
	"io"
	"testing"

	"github.com/glucoxe/netspread/internal/graph"
	"github.com/glucoxe/netspread/internal/logging"
	"github.com/glucoxe/netspread/internal/propagation"
	"github.com/glucoxe/netspread/internal/rng"
)

// Runner orchestrates generation/simulation experiments against the real
// pipeline.
type Runner struct {
	t *testing.T
}

// NewRunner creates a runner whose logging is discarded.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// RunResult captures everything a scenario produced.
type RunResult struct {
	Network *graph.Network
	Report  *graph.Report
	Result  *propagation.Result
}

// Run executes the scenario and returns the collected results. Generation
// or simulation errors fail the test.
func (r *Runner) Run(scenario Scenario) RunResult {
	r.t.Helper()
	logger := logging.NewLogger("info", io.Discard)

	out := RunResult{Network: scenario.Network}

	if out.Network == nil {
		variant := graph.VariantLattice
		params := graph.Params{
			TotalNodes:         scenario.Nodes,
			ConnectionsPerNode: scenario.Connections,
		}
		if scenario.Geo != nil {
			variant = graph.VariantGeo
			params.Geo = *scenario.Geo
		}
		params.Variant = variant

		net, report, err := graph.Generate(params, rng.New(scenario.Seed), logger, nil)
		if err != nil {
			r.t.Fatalf("scenario %q: Generate: %v", scenario.Name, err)
		}
		out.Network = net
		out.Report = report
	}

	if scenario.SkipSimulation {
		return out
	}

	processing, latency, delay := scenario.timingOrDefault()
	result, err := propagation.Simulate(out.Network, propagation.Params{
		Origin:             scenario.Origin,
		ProcessingTime:     processing,
		NetworkLatency:     latency,
		DiagnosticDelay:    delay,
		DiagnosticsEnabled: !scenario.DisableDiagnostics,
	}, logger, nil)
	if err != nil {
		r.t.Fatalf("scenario %q: Simulate: %v", scenario.Name, err)
	}
	out.Result = result

	return out
}
