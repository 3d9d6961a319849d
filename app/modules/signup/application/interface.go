package signupservice

import (
	"context"

	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Service defines signup lifecycle operations. Mutations are gated on the
// event still being scheduled; the resulting bench placement falls out of
// the lineup rebuild, not out of this module.
type Service interface {
	CreateSignup(ctx context.Context, request signupevents.SignupCreateRequestedPayloadV1) (results.OperationResult, error)
	GetSignup(ctx context.Context, signupID sharedtypes.SignupID) (results.OperationResult, error)
	UpdateSignup(ctx context.Context, request signupevents.SignupUpdateRequestedPayloadV1) (results.OperationResult, error)
	WithdrawSignup(ctx context.Context, signupID sharedtypes.SignupID) (results.OperationResult, error)
	SetBanned(ctx context.Context, signupID sharedtypes.SignupID, banned bool) (results.OperationResult, error)
	ListSignups(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error)
	ListBanned(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error)
}
