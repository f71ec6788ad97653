package propagation

import (
	"io"
	"log/slog"
	"testing"

	"github.com/glucoxe/netspread/internal/graph"
	"github.com/glucoxe/netspread/internal/logging"
	"github.com/glucoxe/netspread/internal/rng"
	"github.com/google/go-cmp/cmp"
)

func testLogger() *slog.Logger {
	return logging.NewLogger("info", io.Discard)
}

// buildNet assembles a network from explicit positions and undirected edges.
func buildNet(t *testing.T, positions [][2]float64, edges [][2]int) *graph.Network {
	t.Helper()
	net := &graph.Network{Nodes: make([]graph.Node, len(positions))}
	for i, p := range positions {
		net.Nodes[i] = graph.Node{ID: i, X: p[0], Y: p[1]}
	}
	for _, e := range edges {
		a, b := e[0], e[1]
		if a > b {
			a, b = b, a
		}
		net.Edges = append(net.Edges, graph.Edge{A: a, B: b})
		net.Nodes[e[0]].Neighbors = append(net.Nodes[e[0]].Neighbors, e[1])
		net.Nodes[e[1]].Neighbors = append(net.Nodes[e[1]].Neighbors, e[0])
	}
	return net
}

func defaultParams() Params {
	return Params{
		Origin:             0,
		ProcessingTime:     1.0,
		NetworkLatency:     5.0,
		DiagnosticDelay:    5.0,
		DiagnosticsEnabled: true,
	}
}

func TestSimulateZeroNodes(t *testing.T) {
	result, err := Simulate(&graph.Network{}, defaultParams(), testLogger(), nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(result.Steps) != 0 || len(result.Confirmations) != 0 {
		t.Errorf("empty network produced %d steps, %d confirmations",
			len(result.Steps), len(result.Confirmations))
	}
	if result.Summary.TotalTime != 0 {
		t.Errorf("TotalTime = %v, want 0", result.Summary.TotalTime)
	}
}

func TestSimulateSingleNode(t *testing.T) {
	net := buildNet(t, [][2]float64{{0, 0}}, nil)
	result, err := Simulate(net, defaultParams(), testLogger(), nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	// A lone origin settles immediately: one synthetic step, zero time.
	if len(result.Steps) != 1 {
		t.Fatalf("got %d steps, want 1", len(result.Steps))
	}
	final := result.Steps[0]
	if final.StepTime != 0 || final.CumulativeTime != 0 {
		t.Errorf("synthetic step time = %v/%v, want 0/0", final.StepTime, final.CumulativeTime)
	}
	if final.Received != 1 || final.Pending != 0 {
		t.Errorf("final counts = %d received, %d pending", final.Received, final.Pending)
	}
	if result.Summary.Coverage != 1.0 {
		t.Errorf("Coverage = %v, want 1.0", result.Summary.Coverage)
	}
}

func TestSimulateOriginOutOfRange(t *testing.T) {
	net := buildNet(t, [][2]float64{{0, 0}, {50, 0}}, [][2]int{{0, 1}})
	p := defaultParams()
	p.Origin = 5
	if _, err := Simulate(net, p, testLogger(), nil); err == nil {
		t.Error("Simulate accepted an out-of-range origin")
	}
	p.Origin = -1
	if _, err := Simulate(net, p, testLogger(), nil); err == nil {
		t.Error("Simulate accepted a negative origin")
	}
}

func TestSimulateLine(t *testing.T) {
	// 0 -- 1 -- 2 in a line, 50px apart.
	net := buildNet(t,
		[][2]float64{{0, 0}, {50, 0}, {100, 0}},
		[][2]int{{0, 1}, {1, 2}})

	result, err := Simulate(net, defaultParams(), testLogger(), nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	// Wave reaches node 1, then node 2, then node 2's echo stops node 1;
	// plus the final synthetic step.
	if got := len(result.Steps); got != 4 {
		t.Fatalf("got %d steps, want 4", got)
	}

	for i, step := range result.Steps[:3] {
		if step.StepTime != 6.0 {
			t.Errorf("step %d time = %v, want 6.0", i+1, step.StepTime)
		}
		if want := 6.0 * float64(i+1); step.CumulativeTime != want {
			t.Errorf("step %d cumulative = %v, want %v", i+1, step.CumulativeTime, want)
		}
	}
	final := result.Steps[3]
	if final.StepTime != 0 || len(final.Propagators) != 0 {
		t.Errorf("synthetic step has time %v and %d propagators", final.StepTime, len(final.Propagators))
	}

	if result.Summary.TotalTime != 18.0 {
		t.Errorf("TotalTime = %v, want 18.0", result.Summary.TotalTime)
	}
	if result.Summary.Coverage != 1.0 {
		t.Errorf("Coverage = %v, want 1.0", result.Summary.Coverage)
	}

	// Node 1 is stopped by node 2's echo at step 3 and confirms once.
	if len(result.Confirmations) != 1 {
		t.Fatalf("got %d confirmations, want 1", len(result.Confirmations))
	}
	conf := result.Confirmations[0]
	if conf.NodeID != 1 || conf.Step != 3 {
		t.Errorf("confirmation = node %d at step %d, want node 1 at step 3", conf.NodeID, conf.Step)
	}
	if conf.CreatedAt != 18.0 {
		t.Errorf("CreatedAt = %v, want 18.0", conf.CreatedAt)
	}
	if conf.ArrivalAt != 23.0 {
		t.Errorf("ArrivalAt = %v, want 23.0 (created + diagnostic delay)", conf.ArrivalAt)
	}
	if diff := cmp.Diff([]int{0, 1}, conf.Path); diff != "" {
		t.Errorf("confirmation path mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulateDistanceTieBreak(t *testing.T) {
	// Diamond with a tail: node 3 hears from 1 and 2 in the same wave.
	// The arrival over the longer connection wins, so node 3's recorded
	// route goes through 2 even though both routes are two hops.
	//
	//   0 -- 1      0-1: 100px    1-3: 100px
	//   0 -- 2      0-2: 30px     2-3: 202px
	//   1 -- 3
	//   2 -- 3
	//   3 -- 4      3-4: 100px
	net := buildNet(t,
		[][2]float64{{0, 0}, {0, 100}, {30, 0}, {0, 200}, {0, 300}},
		[][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}})

	result, err := Simulate(net, defaultParams(), testLogger(), nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	if got := len(result.Steps); got != 5 {
		t.Fatalf("got %d steps, want 5", got)
	}

	// Node 3 is stopped by node 4's echo; its confirmation carries the
	// route chosen at receive time.
	var node3 *Confirmation
	for i := range result.Confirmations {
		if result.Confirmations[i].NodeID == 3 {
			node3 = &result.Confirmations[i]
		}
	}
	if node3 == nil {
		t.Fatal("node 3 was never stopped")
	}
	if diff := cmp.Diff([]int{0, 2, 3}, node3.Path); diff != "" {
		t.Errorf("node 3 path mismatch (-want +got):\n%s", diff)
	}

	// Nodes 1 and 2 are stopped one step earlier by node 3's wave.
	if len(result.Confirmations) != 3 {
		t.Errorf("got %d confirmations, want 3", len(result.Confirmations))
	}
	final := result.Steps[len(result.Steps)-1]
	if final.Stopped != 3 || final.Received != 2 {
		t.Errorf("final counts = %d stopped, %d received, want 3/2", final.Stopped, final.Received)
	}
}

func TestSimulateStateSums(t *testing.T) {
	net, _, err := graph.Generate(graph.Params{
		TotalNodes:         100,
		ConnectionsPerNode: 10,
		Variant:            graph.VariantLattice,
	}, rng.New(42), testLogger(), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	result, err := Simulate(net, defaultParams(), testLogger(), nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	for _, step := range result.Steps {
		if sum := step.Received + step.Pending + step.Stopped; sum != 100 {
			t.Errorf("step %d state sum = %d, want 100", step.Index, sum)
		}
		if step.States[0] != StateReceived {
			t.Errorf("step %d: origin state = %s, want received", step.Index, step.States[0])
		}
	}
}

func TestSimulateDeterministic(t *testing.T) {
	p := graph.Params{TotalNodes: 100, ConnectionsPerNode: 10, Variant: graph.VariantLattice}

	run := func() *Result {
		net, _, err := graph.Generate(p, rng.New(42), testLogger(), nil)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		result, err := Simulate(net, defaultParams(), testLogger(), nil)
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}
		return result
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("identical seeds produced different results (-a +b):\n%s", diff)
	}
}

func TestSimulateDiagnosticsDisabled(t *testing.T) {
	net := buildNet(t,
		[][2]float64{{0, 0}, {50, 0}, {100, 0}},
		[][2]int{{0, 1}, {1, 2}})

	p := defaultParams()
	p.DiagnosticsEnabled = false
	result, err := Simulate(net, p, testLogger(), nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(result.Confirmations) != 1 {
		t.Fatalf("got %d confirmations, want 1", len(result.Confirmations))
	}
	if got := result.Confirmations[0].ArrivalAt; got != 0 {
		t.Errorf("ArrivalAt = %v, want 0 with diagnostics disabled", got)
	}
}

func TestSimulateZeroTiming(t *testing.T) {
	net := buildNet(t,
		[][2]float64{{0, 0}, {50, 0}},
		[][2]int{{0, 1}})

	result, err := Simulate(net, Params{Origin: 0}, testLogger(), nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if result.Summary.TotalTime != 0 {
		t.Errorf("TotalTime = %v, want 0 with zero timing", result.Summary.TotalTime)
	}
	if result.Summary.Coverage != 1.0 {
		t.Errorf("Coverage = %v, want 1.0", result.Summary.Coverage)
	}
}

func TestSortArrivals(t *testing.T) {
	arr := []arrival{
		{from: 1, dist: 50, pathLen: 2},
		{from: 2, dist: 100, pathLen: 3},
		{from: 3, dist: 98, pathLen: 2},
	}
	sortArrivals(arr)

	// 100 vs 50 differ beyond the threshold: farthest first. 100 vs 98 are
	// a tie: the shorter path wins.
	if arr[0].from != 3 || arr[1].from != 2 || arr[2].from != 1 {
		t.Errorf("order = %d, %d, %d, want 3, 2, 1", arr[0].from, arr[1].from, arr[2].from)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StatePending, "pending"},
		{StateReceived, "received"},
		{StateStopped, "stopped"},
		{State(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
