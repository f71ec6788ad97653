package propagation

import "sort"

// ProcessConfirmations computes the arrival time of each confirmation's
// return trip and sorts the result ascending by arrival. The diagnostic
// delay is added once per confirmation, not per hop: return transmission is
// modeled as parallel, the same way forward delivery is.
//
// The input slice is not mutated.
func ProcessConfirmations(confs []Confirmation, delay float64) []Confirmation {
	out := make([]Confirmation, len(confs))
	copy(out, confs)

	for i := range out {
		out[i].ArrivalAt = out[i].CreatedAt + delay
	}

	// Stable: confirmations created in the same step keep creation order.
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].ArrivalAt < out[b].ArrivalAt
	})
	return out
}

// ConfirmationWindow returns the first and last arrival times of a processed
// confirmation sequence, or zeros when there are none.
func ConfirmationWindow(confs []Confirmation) (first, last float64) {
	if len(confs) == 0 {
		return 0, 0
	}
	return confs[0].ArrivalAt, confs[len(confs)-1].ArrivalAt
}
