package loan

import "time"

// Allowed transitions. Rejected, paid and defaulted are terminal; no
// transition may skip a state.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusActive},
	StatusActive:   {StatusPaid, StatusDefaulted},
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusPaid, StatusDefaulted:
		return true
	}
	return false
}

// Transition moves the loan to the target status, stamping the lifecycle
// timestamps exactly once. Callers persist the loan afterwards; this only
// mutates the in-memory record.
func (l *Loan) Transition(to Status, now time.Time) error {
	if !l.Status.CanTransition(to) {
		return ErrInvalidTransition
	}
	l.Status = to
	l.StatusUpdatedAt = now

	switch to {
	case StatusActive:
		if l.ActivatedAt == nil {
			t := now
			l.ActivatedAt = &t
		}
	case StatusPaid:
		if l.PaidAt == nil {
			t := now
			l.PaidAt = &t
		}
	}
	return nil
}
