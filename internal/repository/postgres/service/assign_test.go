package service

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestPlanAssignmentTruncatesToCapacity(t *testing.T) {
	outcome := planAssignment(
		[]string{"E1", "E2", "E3"},
		map[string]bool{},
		map[string]bool{},
		2,
	)

	if !reflect.DeepEqual(outcome.Assigned, []string{"E1", "E2"}) {
		t.Fatalf("expected E1,E2 assigned, got %v", outcome.Assigned)
	}
	if !reflect.DeepEqual(outcome.OverCapacity, []string{"E3"}) {
		t.Fatalf("expected E3 over capacity, got %v", outcome.OverCapacity)
	}
	if outcome.SeatsLeft != 0 {
		t.Fatalf("expected 0 seats left, got %d", outcome.SeatsLeft)
	}
}

func TestPlanAssignmentSkipsBusyElsewhere(t *testing.T) {
	outcome := planAssignment(
		[]string{"E1", "E2", "E3"},
		map[string]bool{},
		map[string]bool{"E2": true},
		5,
	)

	if !reflect.DeepEqual(outcome.Assigned, []string{"E1", "E3"}) {
		t.Fatalf("expected E1,E3 assigned, got %v", outcome.Assigned)
	}
	if !reflect.DeepEqual(outcome.BusyElsewhere, []string{"E2"}) {
		t.Fatalf("expected E2 busy elsewhere, got %v", outcome.BusyElsewhere)
	}
}

func TestPlanAssignmentDedupesOnService(t *testing.T) {
	outcome := planAssignment(
		[]string{"E1", "E2"},
		map[string]bool{"E1": true},
		map[string]bool{},
		5,
	)

	if !reflect.DeepEqual(outcome.Assigned, []string{"E2"}) {
		t.Fatalf("expected only E2 assigned, got %v", outcome.Assigned)
	}
	if !reflect.DeepEqual(outcome.AlreadyOnService, []string{"E1"}) {
		t.Fatalf("expected E1 already on service, got %v", outcome.AlreadyOnService)
	}
}

func TestPlanAssignmentCollapsesRepeatedSelection(t *testing.T) {
	outcome := planAssignment(
		[]string{"E1", "E1", "E2", "E1"},
		map[string]bool{},
		map[string]bool{},
		5,
	)

	if !reflect.DeepEqual(outcome.Assigned, []string{"E1", "E2"}) {
		t.Fatalf("expected E1,E2 assigned once each, got %v", outcome.Assigned)
	}
}

func TestPlanAssignmentPreservesSelectionOrder(t *testing.T) {
	outcome := planAssignment(
		[]string{"E3", "E1", "E2"},
		map[string]bool{},
		map[string]bool{},
		2,
	)

	if !reflect.DeepEqual(outcome.Assigned, []string{"E3", "E1"}) {
		t.Fatalf("expected selection order kept, got %v", outcome.Assigned)
	}
	if !reflect.DeepEqual(outcome.OverCapacity, []string{"E2"}) {
		t.Fatalf("expected E2 over capacity, got %v", outcome.OverCapacity)
	}
}

func TestPlanAssignmentNoSeats(t *testing.T) {
	outcome := planAssignment(
		[]string{"E1"},
		map[string]bool{},
		map[string]bool{},
		0,
	)

	if len(outcome.Assigned) != 0 {
		t.Fatalf("expected nothing assigned, got %v", outcome.Assigned)
	}
	if !reflect.DeepEqual(outcome.OverCapacity, []string{"E1"}) {
		t.Fatalf("expected E1 over capacity, got %v", outcome.OverCapacity)
	}
	if outcome.SeatsLeft != 0 {
		t.Fatalf("expected 0 seats left, got %d", outcome.SeatsLeft)
	}
}

// seatLedger stands in for the assignment table: a snapshot read, a plan
// against the snapshot, and a commit refused when the snapshot went
// stale, the same first-committer-wins refusal the serializable
// transaction gives Assign.
type seatLedger struct {
	mu       sync.Mutex
	capacity int
	seats    map[string]bool
}

func (l *seatLedger) snapshot() (map[string]bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	onService := make(map[string]bool, len(l.seats))
	for id := range l.seats {
		onService[id] = true
	}
	return onService, len(l.seats)
}

func (l *seatLedger) commit(plan []string, seenCount int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Stale snapshot: the caller must replan.
	if len(l.seats) != seenCount {
		return false
	}
	for _, id := range plan {
		if l.seats[id] {
			return false
		}
	}
	for _, id := range plan {
		l.seats[id] = true
	}
	return true
}

func TestConcurrentAssignersNeverOverbook(t *testing.T) {
	const workers = 8
	const capacity = 5

	ledger := &seatLedger{capacity: capacity, seats: map[string]bool{}}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		selection := []string{
			fmt.Sprintf("E%d-a", w),
			fmt.Sprintf("E%d-b", w),
		}

		wg.Add(1)
		go func(selected []string) {
			defer wg.Done()

			for attempt := 0; attempt < workers+1; attempt++ {
				onService, count := ledger.snapshot()

				seatsLeft := capacity - count
				if seatsLeft < 0 {
					seatsLeft = 0
				}

				outcome := planAssignment(selected, onService, map[string]bool{}, seatsLeft)
				if len(outcome.Assigned) == 0 {
					return
				}
				if ledger.commit(outcome.Assigned, count) {
					return
				}
			}
		}(selection)
	}
	wg.Wait()

	if len(ledger.seats) > capacity {
		t.Fatalf("overbooked: %d seats taken with capacity %d", len(ledger.seats), capacity)
	}
	if len(ledger.seats) != capacity {
		t.Fatalf("expected every seat filled, got %d of %d", len(ledger.seats), capacity)
	}
}

// Two assigners with disjoint employee sets both plan against an empty
// service before either commits. The unique per-employee index cannot
// catch this overlap, so the late committer must be refused by the
// count re-check and replan against the committed state.
func TestDisjointAssignersLateCommitterReplans(t *testing.T) {
	const capacity = 2

	ledger := &seatLedger{capacity: capacity, seats: map[string]bool{}}

	firstSeen, firstCount := ledger.snapshot()
	secondSeen, secondCount := ledger.snapshot()

	first := planAssignment([]string{"A1", "A2"}, firstSeen, map[string]bool{}, capacity-firstCount)
	second := planAssignment([]string{"B1", "B2"}, secondSeen, map[string]bool{}, capacity-secondCount)

	if !ledger.commit(first.Assigned, firstCount) {
		t.Fatalf("first committer refused on an empty service")
	}
	if ledger.commit(second.Assigned, secondCount) {
		t.Fatalf("late committer accepted a stale plan")
	}

	// Replan: the service is now full, nothing may be inserted.
	secondSeen, secondCount = ledger.snapshot()
	seatsLeft := capacity - secondCount
	if seatsLeft < 0 {
		seatsLeft = 0
	}
	second = planAssignment([]string{"B1", "B2"}, secondSeen, map[string]bool{}, seatsLeft)

	if len(second.Assigned) != 0 {
		t.Fatalf("expected nothing assigned on replan, got %v", second.Assigned)
	}
	if !reflect.DeepEqual(second.OverCapacity, []string{"B1", "B2"}) {
		t.Fatalf("expected B1,B2 over capacity, got %v", second.OverCapacity)
	}
	if len(ledger.seats) != capacity {
		t.Fatalf("expected %d seats taken, got %d", capacity, len(ledger.seats))
	}
}

func TestPlanAssignmentIgnoresEmptyIDs(t *testing.T) {
	outcome := planAssignment(
		[]string{"", "E1"},
		map[string]bool{},
		map[string]bool{},
		5,
	)

	if !reflect.DeepEqual(outcome.Assigned, []string{"E1"}) {
		t.Fatalf("expected only E1 assigned, got %v", outcome.Assigned)
	}
}
