package lineupdomain

import (
	"errors"
	"fmt"

	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

var (
	// ErrSignupNotFound means the referenced signup is not part of this event.
	ErrSignupNotFound = errors.New("signup not found in lineup")
	// ErrDuplicateSignup means AddSignup saw an id the model already holds.
	ErrDuplicateSignup = errors.New("signup already present in lineup")
	// ErrSignupBanned means a banned signup was used in a slot or bench operation.
	ErrSignupBanned = errors.New("signup is banned for this event")
	// ErrNotAssigned means Unassign was called for a signup without a slot.
	ErrNotAssigned = errors.New("signup is not assigned to a slot")
)

// SlotOccupiedError is returned when assigning to a taken slot without an
// explicit swap. Caught locally, never sent to the server.
type SlotOccupiedError struct {
	Slot     SlotKey
	Occupant sharedtypes.SignupID
}

func (e *SlotOccupiedError) Error() string {
	return fmt.Sprintf("slot %s already holds signup %d", e.Slot, e.Occupant)
}

// InvalidOrderError is returned when a bench reorder is not a permutation
// of the current bench membership.
type InvalidOrderError struct {
	Reason string
}

func (e *InvalidOrderError) Error() string {
	return "invalid bench order: " + e.Reason
}

// InvalidSlotError is returned for slot keys outside the role key space.
type InvalidSlotError struct {
	Slot SlotKey
}

func (e *InvalidSlotError) Error() string {
	return fmt.Sprintf("invalid slot %s", e.Slot)
}
