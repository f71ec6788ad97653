package propagation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProcessConfirmations(t *testing.T) {
	confs := []Confirmation{
		{NodeID: 4, Path: []int{0, 4}, Step: 3, CreatedAt: 18},
		{NodeID: 2, Path: []int{0, 2}, Step: 2, CreatedAt: 12},
		{NodeID: 7, Path: []int{0, 3, 7}, Step: 3, CreatedAt: 18},
	}

	got := ProcessConfirmations(confs, 5)

	// Sorted by arrival time; ties keep emission order.
	want := []Confirmation{
		{NodeID: 2, Path: []int{0, 2}, Step: 2, CreatedAt: 12, ArrivalAt: 17},
		{NodeID: 4, Path: []int{0, 4}, Step: 3, CreatedAt: 18, ArrivalAt: 23},
		{NodeID: 7, Path: []int{0, 3, 7}, Step: 3, CreatedAt: 18, ArrivalAt: 23},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ProcessConfirmations mismatch (-want +got):\n%s", diff)
	}

	// The input is left untouched.
	if confs[0].ArrivalAt != 0 {
		t.Error("ProcessConfirmations mutated its input")
	}
}

func TestProcessConfirmationsEmpty(t *testing.T) {
	if got := ProcessConfirmations(nil, 5); len(got) != 0 {
		t.Errorf("got %d confirmations from nil input", len(got))
	}
}

func TestProcessConfirmationsZeroDelay(t *testing.T) {
	got := ProcessConfirmations([]Confirmation{{NodeID: 1, CreatedAt: 6}}, 0)
	if got[0].ArrivalAt != 6 {
		t.Errorf("ArrivalAt = %v, want 6 with zero delay", got[0].ArrivalAt)
	}
}

func TestConfirmationWindow(t *testing.T) {
	confs := []Confirmation{
		{NodeID: 1, ArrivalAt: 17},
		{NodeID: 2, ArrivalAt: 23},
		{NodeID: 3, ArrivalAt: 29},
	}
	first, last := ConfirmationWindow(confs)
	if first != 17 || last != 29 {
		t.Errorf("window = [%v, %v], want [17, 29]", first, last)
	}
}

func TestConfirmationWindowEmpty(t *testing.T) {
	first, last := ConfirmationWindow(nil)
	if first != 0 || last != 0 {
		t.Errorf("window = [%v, %v], want [0, 0]", first, last)
	}
}
