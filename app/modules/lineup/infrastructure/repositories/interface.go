package lineupdb

import (
	"context"
	"time"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// StoredLineup is the persisted seat arrangement for one event. Signup
// records live in the signups table and are joined in by the service.
type StoredLineup struct {
	EventID     sharedtypes.EventID
	Slots       []lineupdomain.SlotAssignment
	Bench       []sharedtypes.SignupID
	Version     string
	ConfirmedBy *sharedtypes.UserID
	ConfirmedAt *time.Time
}

// Repository defines the contract for lineup persistence.
//
// Error semantics:
//   - ErrVersionMismatch: SaveLineup's expected version lost a write race
//   - Other errors: infrastructure failures
type Repository interface {
	// GetLineup retrieves the stored arrangement. An event with no saved
	// lineup yet yields an empty StoredLineup, not an error.
	GetLineup(ctx context.Context, eventID sharedtypes.EventID) (*StoredLineup, error)

	// SaveLineup transactionally replaces the slot rows and bench order.
	// expectedVersion must match the stored version fingerprint; pass the
	// empty string for a first write. Returns ErrVersionMismatch when a
	// concurrent writer got there first.
	SaveLineup(ctx context.Context, snapshot lineupdomain.Snapshot, expectedVersion string) error

	// Confirm marks the lineup as confirmed by an officer.
	Confirm(ctx context.Context, eventID sharedtypes.EventID, userID sharedtypes.UserID) error
}
