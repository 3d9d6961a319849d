package signupdb

import (
	"context"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	signupdomain "github.com/hnaspl/woltk-calendar/app/modules/signup/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Repository defines the contract for signup persistence.
//
// Error semantics:
//   - ErrNotFound: record does not exist
//   - ErrDuplicate: the character already has a signup for the event
//   - Other errors: infrastructure failures
type Repository interface {
	// GetSignup retrieves a signup by ID.
	GetSignup(ctx context.Context, signupID sharedtypes.SignupID) (*signupdomain.Signup, error)

	// CreateSignup inserts a new signup and fills in the generated ID.
	// Returns ErrDuplicate when the character already signed up.
	CreateSignup(ctx context.Context, signup *signupdomain.Signup) error

	// UpdateSignup persists role and note changes.
	UpdateSignup(ctx context.Context, signupID sharedtypes.SignupID, role lineupdomain.Role, note string) error

	// DeleteSignup removes a signup row. Returns ErrNotFound when no row
	// was deleted.
	DeleteSignup(ctx context.Context, signupID sharedtypes.SignupID) error

	// SetBanned flips the banned flag.
	SetBanned(ctx context.Context, signupID sharedtypes.SignupID, banned bool) error

	// ListByEvent returns all signups for an event in creation order,
	// banned ones included.
	ListByEvent(ctx context.Context, eventID sharedtypes.EventID) ([]signupdomain.Signup, error)

	// ListBanned returns the banned signups for an event.
	ListBanned(ctx context.Context, eventID sharedtypes.EventID) ([]signupdomain.Signup, error)
}
