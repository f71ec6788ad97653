package propagation

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/glucoxe/netspread/internal/graph"
	"github.com/glucoxe/netspread/internal/logging"
)

// arrivalTieThreshold is the connection-distance difference (px) below which
// two same-step arrivals are considered tied and ordered by path length.
const arrivalTieThreshold = 5.0

// arrival is one send landing at a destination during a wave.
type arrival struct {
	from    int
	dist    float64
	pathLen int // origin-to-destination hop count via the sender
}

// Simulate runs the wave-based spread from the configured origin. The origin
// must be a valid node id; a zero-node network yields a zero-step,
// zero-time result.
func Simulate(net *graph.Network, p Params, logger *slog.Logger, trace *logging.TraceLogger) (*Result, error) {
	n := net.Size()
	if n == 0 {
		return &Result{Steps: []Step{}, Confirmations: []Confirmation{}}, nil
	}
	if p.Origin < 0 || p.Origin >= n {
		return nil, fmt.Errorf("simulate: origin node %d out of range [0, %d)", p.Origin, n)
	}

	states := make([]State, n)
	paths := make([][]int, n)
	confirmed := make([]bool, n)

	states[p.Origin] = StateReceived
	paths[p.Origin] = []int{p.Origin}

	// The timing model is fully parallel: every node processes and every
	// edge transmits concurrently, so a step costs the same no matter how
	// many nodes propagate in it.
	stepDuration := p.ProcessingTime + p.NetworkLatency

	var steps []Step
	var confirmations []Confirmation
	cumulative := 0.0
	propagators := []int{p.Origin}

	stop := func(id int, stepIndex int, at float64) {
		if id == p.Origin || states[id] == StateStopped || confirmed[id] {
			return
		}
		states[id] = StateStopped
		confirmed[id] = true
		path := make([]int, len(paths[id]))
		copy(path, paths[id])
		confirmations = append(confirmations, Confirmation{
			NodeID:    id,
			Path:      path,
			Step:      stepIndex,
			CreatedAt: at,
		})
	}

	for len(propagators) > 0 {
		stepIndex := len(steps) + 1
		stepEnd := cumulative + stepDuration

		// Arrival collection: gather every send of the wave per
		// destination before applying any of them, so deliveries within
		// a step are simultaneous. Destinations keep first-send order.
		arrivals := make(map[int][]arrival)
		var destOrder []int
		for _, from := range propagators {
			for _, to := range orderedNeighbors(net, from) {
				if states[to] == StateStopped {
					continue
				}
				if _, seen := arrivals[to]; !seen {
					destOrder = append(destOrder, to)
				}
				arrivals[to] = append(arrivals[to], arrival{
					from:    from,
					dist:    net.Distance(from, to),
					pathLen: len(paths[from]) + 1,
				})
			}
		}
		if len(destOrder) == 0 {
			// The wave had nobody to deliver to; the run is settled.
			break
		}

		var next []int
		for _, dest := range destOrder {
			arr := arrivals[dest]
			sortArrivals(arr)
			first := arr[0]

			switch states[dest] {
			case StatePending:
				// First arrival wins: the path is whichever arrival
				// sorts first, not necessarily the shortest route.
				states[dest] = StateReceived
				path := make([]int, 0, first.pathLen)
				path = append(path, paths[first.from]...)
				path = append(path, dest)
				paths[dest] = path

				if len(arr) > 1 && arr[1].pathLen > first.pathLen {
					// Duplicate delivery in the same pass over a
					// strictly longer path stops the node outright.
					stop(dest, stepIndex, stepEnd)
					continue
				}
				next = append(next, dest)

			case StateReceived:
				if first.pathLen > len(paths[dest]) {
					stop(dest, stepIndex, stepEnd)
				}
			}
		}

		cumulative = stepEnd
		steps = append(steps, makeStep(stepIndex, propagators, states, stepDuration, cumulative))
		trace.Step(map[string]any{
			"event":       "propagation_step",
			"step":        stepIndex,
			"propagators": len(propagators),
			"received":    steps[len(steps)-1].Received,
			"pending":     steps[len(steps)-1].Pending,
			"stopped":     steps[len(steps)-1].Stopped,
		})

		propagators = next
	}

	// Final synthetic step: the fully-settled state, no active propagators.
	steps = append(steps, makeStep(len(steps)+1, nil, states, 0, cumulative))

	result := &Result{
		Steps:         steps,
		Confirmations: confirmations,
	}
	if p.DiagnosticsEnabled {
		result.Confirmations = ProcessConfirmations(confirmations, p.DiagnosticDelay)
	}
	result.Summary = summarize(n, steps, result.Confirmations, cumulative)

	logger.Info("propagation complete",
		"steps", result.Summary.TotalSteps,
		"total_time_ms", result.Summary.TotalTime,
		"max_propagators", result.Summary.MaxPropagators,
		"stopped", result.Summary.StoppedNodes,
		"coverage", result.Summary.Coverage)

	return result, nil
}

// orderedNeighbors returns a node's neighbors ordered farthest first. The
// ordering only affects arrival tie-breaks, never reachability.
func orderedNeighbors(net *graph.Network, from int) []int {
	src := net.Nodes[from].Neighbors
	nbrs := make([]int, len(src))
	copy(nbrs, src)
	sort.Slice(nbrs, func(a, b int) bool {
		da, db := net.Distance(from, nbrs[a]), net.Distance(from, nbrs[b])
		if da != db {
			return da > db
		}
		return nbrs[a] < nbrs[b]
	})
	return nbrs
}

// sortArrivals orders same-step arrivals: descending connection distance
// when distances differ by more than the tie threshold, ascending path
// length otherwise. Stable so collection order decides exact ties.
func sortArrivals(arr []arrival) {
	sort.SliceStable(arr, func(a, b int) bool {
		if math.Abs(arr[a].dist-arr[b].dist) > arrivalTieThreshold {
			return arr[a].dist > arr[b].dist
		}
		return arr[a].pathLen < arr[b].pathLen
	})
}

func makeStep(index int, propagators []int, states []State, stepTime, cumulative float64) Step {
	snapshot := make([]State, len(states))
	copy(snapshot, states)

	props := make([]int, len(propagators))
	copy(props, propagators)

	s := Step{
		Index:          index,
		Propagators:    props,
		States:         snapshot,
		StepTime:       stepTime,
		CumulativeTime: cumulative,
	}
	for _, st := range snapshot {
		switch st {
		case StateReceived:
			s.Received++
		case StateStopped:
			s.Stopped++
		default:
			s.Pending++
		}
	}
	return s
}

func summarize(n int, steps []Step, confs []Confirmation, totalTime float64) Summary {
	sum := Summary{
		TotalSteps: len(steps),
		TotalTime:  totalTime,
	}
	for _, s := range steps {
		if len(s.Propagators) > sum.MaxPropagators {
			sum.MaxPropagators = len(s.Propagators)
		}
	}
	if len(steps) > 0 {
		final := steps[len(steps)-1]
		sum.StoppedNodes = final.Stopped
		reached := final.Received + final.Stopped
		if n > 0 {
			sum.Coverage = float64(reached) / float64(n)
		}
		sum.AverageStepTime = totalTime / float64(len(steps))
		sum.Efficiency = float64(reached) / float64(len(steps))
	}
	return sum
}
