package raiddomain

import "fmt"

// LifecycleViolationError reports a disallowed status transition or a
// mutation attempted against a non-mutable event.
type LifecycleViolationError struct {
	From EventStatus
	To   EventStatus
}

func (e *LifecycleViolationError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("event is %s and cannot be modified", e.From)
	}
	return fmt.Sprintf("cannot transition event from %s to %s", e.From, e.To)
}

// transitions lists the allowed status moves. locked -> scheduled is the
// unlock path; completed and cancelled have no exits.
var transitions = map[EventStatus][]EventStatus{
	StatusScheduled: {StatusLocked, StatusCancelled},
	StatusLocked:    {StatusScheduled, StatusCompleted, StatusCancelled},
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to EventStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates and applies a status change, returning the event
// with the new status.
func (e RaidEvent) Transition(to EventStatus) (RaidEvent, error) {
	if !CanTransition(e.Status, to) {
		return e, &LifecycleViolationError{From: e.Status, To: to}
	}
	e.Status = to
	return e, nil
}

// Mutable reports whether a status accepts signups and lineup edits.
// Only scheduled events are mutable; a locked roster stays frozen until
// an officer unlocks it.
func (s EventStatus) Mutable() bool {
	return s == StatusScheduled
}

// IsMutable reports whether signups and lineup edits are accepted.
func (e RaidEvent) IsMutable() bool {
	return e.Status.Mutable()
}

// CheckMutable returns a LifecycleViolationError when the event does not
// accept roster mutations.
func (e RaidEvent) CheckMutable() error {
	if !e.IsMutable() {
		return &LifecycleViolationError{From: e.Status}
	}
	return nil
}
