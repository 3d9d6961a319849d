package lineupservice

import (
	"context"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Service defines the interface for server-side lineup operations. Mutations
// succeed with a ChangedPayloadV1; rule violations (occupied slot, banned
// signup, frozen event, lost write race) are domain failures, not errors.
type Service interface {
	// GetLineup returns the current snapshot, signup records included.
	GetLineup(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error)

	// Assign seats a signup in a slot, optionally swapping with the
	// occupant.
	Assign(ctx context.Context, eventID sharedtypes.EventID, signupID sharedtypes.SignupID, slot string, swap bool) (results.OperationResult, error)

	// Unassign returns a seated signup to the bench tail.
	Unassign(ctx context.Context, eventID sharedtypes.EventID, signupID sharedtypes.SignupID) (results.OperationResult, error)

	// ReorderBench replaces the bench order with a permutation of itself.
	ReorderBench(ctx context.Context, eventID sharedtypes.EventID, order []sharedtypes.SignupID) (results.OperationResult, error)

	// Replace applies a bulk role-grouped arrangement.
	Replace(ctx context.Context, eventID sharedtypes.EventID, grouped lineupdomain.Grouped) (results.OperationResult, error)

	// Confirm marks the current arrangement confirmed by an officer.
	Confirm(ctx context.Context, eventID sharedtypes.EventID, userID sharedtypes.UserID) (results.OperationResult, error)
}
