package service

// planAssignment decides, from a snapshot of the current seats, which of
// the selected employees get on. Selection order is preserved, repeated
// ids collapse to their first occurrence, employees already on this
// service or active on another one are set aside, and whatever exceeds
// the free seats is turned away. The caller re-validates the snapshot
// inside the transaction before committing the plan.
func planAssignment(selected []string, onService, busyElsewhere map[string]bool, seatsLeft int) AssignOutcome {
	outcome := AssignOutcome{
		Assigned:         []string{},
		AlreadyOnService: []string{},
		BusyElsewhere:    []string{},
		OverCapacity:     []string{},
	}

	seen := make(map[string]bool, len(selected))

	for _, employeeID := range selected {
		if employeeID == "" || seen[employeeID] {
			continue
		}
		seen[employeeID] = true

		switch {
		case onService[employeeID]:
			outcome.AlreadyOnService = append(outcome.AlreadyOnService, employeeID)
		case busyElsewhere[employeeID]:
			outcome.BusyElsewhere = append(outcome.BusyElsewhere, employeeID)
		case len(outcome.Assigned) < seatsLeft:
			outcome.Assigned = append(outcome.Assigned, employeeID)
		default:
			outcome.OverCapacity = append(outcome.OverCapacity, employeeID)
		}
	}

	outcome.SeatsLeft = seatsLeft - len(outcome.Assigned)
	if outcome.SeatsLeft < 0 {
		outcome.SeatsLeft = 0
	}

	return outcome
}
