package simulation

import (
	"github.com/glucoxe/netspread/internal/graph"
)

// Scenario defines a complete generation/simulation experiment.
type Scenario struct {
	Name string

	// Generation inputs. Geo nil selects the ring-lattice variant.
	Nodes       int
	Connections int
	Seed        int64
	Geo         *graph.GeoOptions

	// Network, when non-nil, bypasses generation entirely and simulates
	// over the supplied hand-built network. Use this for scenarios that
	// need exact topology control.
	Network *graph.Network

	// Simulation inputs. Zero timing values are valid (a step then costs
	// nothing); DisableDiagnostics leaves confirmations unprocessed.
	Origin             int
	ProcessingTime     float64
	NetworkLatency     float64
	DiagnosticDelay    float64
	DisableDiagnostics bool
	SkipSimulation     bool
}

// timingOrDefault applies the reference timing model (1ms processing, 5ms
// latency, 5ms diagnostic delay) when the scenario leaves timing zeroed.
func (s Scenario) timingOrDefault() (processing, latency, delay float64) {
	if s.ProcessingTime == 0 && s.NetworkLatency == 0 && s.DiagnosticDelay == 0 {
		return 1.0, 5.0, 5.0
	}
	return s.ProcessingTime, s.NetworkLatency, s.DiagnosticDelay
}
