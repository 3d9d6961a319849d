package lineuphandlers

import (
	"context"

	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
)

// Handlers defines the contract for lineup event handlers.
type Handlers interface {
	HandleAssignRequested(ctx context.Context, payload *lineupevents.AssignRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleUnassignRequested(ctx context.Context, payload *lineupevents.UnassignRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleBenchReorderRequested(ctx context.Context, payload *lineupevents.BenchReorderRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleReplaceRequested(ctx context.Context, payload *lineupevents.ReplaceRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleConfirmRequested(ctx context.Context, payload *lineupevents.ConfirmRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleLineupChanged(ctx context.Context, payload *lineupevents.ChangedPayloadV1) ([]handlerwrapper.Result, error)
	HandleChangeFailed(ctx context.Context, payload *lineupevents.ChangeFailedPayloadV1) ([]handlerwrapper.Result, error)
	HandleLineupConfirmed(ctx context.Context, payload *lineupevents.ConfirmedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRaidStatusChanged(ctx context.Context, payload *raidevents.RaidStatusChangedPayloadV1) ([]handlerwrapper.Result, error)

	HandleSignupCreated(ctx context.Context, payload *signupevents.SignupCreatedPayloadV1) ([]handlerwrapper.Result, error)
	HandleSignupUpdated(ctx context.Context, payload *signupevents.SignupUpdatedPayloadV1) ([]handlerwrapper.Result, error)
	HandleSignupWithdrawn(ctx context.Context, payload *signupevents.SignupWithdrawnPayloadV1) ([]handlerwrapper.Result, error)
	HandleSignupBanChanged(ctx context.Context, payload *signupevents.SignupBanStatePayloadV1) ([]handlerwrapper.Result, error)
}
