// Package propagation runs the synchronous, wave-based spread of a message
// from one origin node over a generated network. Each wave's sends are
// collected per destination and applied simultaneously; duplicate deliveries
// over strictly longer paths stop the receiving node and emit a confirmation
// back toward the origin.
package propagation

// State is a node's propagation status.
type State uint8

const (
	// StatePending means the node has not received the message.
	StatePending State = iota
	// StateReceived means the node holds the message. The origin starts
	// here and never leaves.
	StateReceived
	// StateStopped is terminal: the node received a duplicate over a
	// longer path and is excluded from further propagation.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReceived:
		return "received"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Step is one synchronous propagation round. The snapshot records node
// states after the round's simultaneous deliveries were applied.
type Step struct {
	Index          int     `json:"index"`
	Propagators    []int   `json:"propagators"`
	States         []State `json:"states"`
	StepTime       float64 `json:"step_time_ms"`
	CumulativeTime float64 `json:"cumulative_time_ms"`
	Received       int     `json:"received"`
	Pending        int     `json:"pending"`
	Stopped        int     `json:"stopped"`
}

// Confirmation is emitted exactly once when a node is stopped. It carries
// the node's recorded route from the origin and, after diagnostic
// processing, the computed arrival time of the return message.
type Confirmation struct {
	NodeID    int     `json:"node_id"`
	Path      []int   `json:"path"`
	Step      int     `json:"step"`
	CreatedAt float64 `json:"created_at_ms"`
	ArrivalAt float64 `json:"arrival_at_ms"`
}

// Params are the inputs to one simulation run. Times are in milliseconds.
type Params struct {
	Origin             int
	ProcessingTime     float64
	NetworkLatency     float64
	DiagnosticDelay    float64
	DiagnosticsEnabled bool
}

// Summary holds the scalar results consumed by reporting.
type Summary struct {
	TotalSteps      int     `json:"total_steps"`
	TotalTime       float64 `json:"total_time_ms"`
	AverageStepTime float64 `json:"average_step_time_ms"`
	MaxPropagators  int     `json:"max_propagators"`
	StoppedNodes    int     `json:"stopped_nodes"`
	Coverage        float64 `json:"coverage"`
	Efficiency      float64 `json:"efficiency"`
}

// Result is the complete outcome of one simulation run. Steps are in
// increasing step order and never mutated after the run completes.
type Result struct {
	Steps         []Step         `json:"steps"`
	Confirmations []Confirmation `json:"confirmations"`
	Summary       Summary        `json:"summary"`
}
