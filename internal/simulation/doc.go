// Package simulation provides an end-to-end test harness for validating the
// generation and propagation pipeline.
//
// The harness exercises the real position generator, synthesizers, repairer
// and wave simulator, with no mocks. Scenarios are Go builders that describe one
// generation/simulation run; the Runner executes it and returns the network,
// its generation report and the full propagation trace for property-based
// assertions.
//
// Usage:
//
//	func TestLatticeCoverage(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    got := r.Run(simulation.Scenario{
//	        Name:        "lattice-coverage",
//	        Nodes:       100,
//	        Connections: 20,
//	        Seed:        42,
//	    })
//	    simulation.AssertFullCoverage(t, got)
//	}
package simulation
