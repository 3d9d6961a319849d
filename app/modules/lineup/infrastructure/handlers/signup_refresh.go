package lineuphandlers

import (
	"context"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	"github.com/hnaspl/woltk-calendar/app/shared/attr"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// refresh rebuilds the lineup after a signup mutation and pushes the new
// snapshot into the event room. Signup changes carry no request id, so
// every client adopts them as a remote change.
func (h *LineupHandlers) refresh(ctx context.Context, eventID sharedtypes.EventID, guildID sharedtypes.GuildID) ([]handlerwrapper.Result, error) {
	result, err := h.service.GetLineup(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if result.Success == nil {
		// Event gone (e.g. deleted between messages); nothing to push.
		h.logger.WarnContext(ctx, "Skipping lineup refresh for missing event",
			attr.Int64("event_id", int64(eventID)),
		)
		return nil, nil
	}

	snap := result.Success.(*lineupdomain.Snapshot)
	changed := &lineupevents.ChangedPayloadV1{
		EventID:  eventID,
		GuildID:  guildID,
		Version:  snap.Version,
		Snapshot: snap,
	}
	if err := h.broadcaster.ToEvent(ctx, eventID, lineupevents.MsgLineupChanged, changed); err != nil {
		return nil, err
	}
	return nil, nil
}

// HandleSignupCreated pushes the bench-tail placement of a new signup.
func (h *LineupHandlers) HandleSignupCreated(ctx context.Context, payload *signupevents.SignupCreatedPayloadV1) ([]handlerwrapper.Result, error) {
	return h.refresh(ctx, payload.Signup.EventID, payload.GuildID)
}

// HandleSignupUpdated pushes a role or note change.
func (h *LineupHandlers) HandleSignupUpdated(ctx context.Context, payload *signupevents.SignupUpdatedPayloadV1) ([]handlerwrapper.Result, error) {
	return h.refresh(ctx, payload.Signup.EventID, payload.GuildID)
}

// HandleSignupWithdrawn pushes the arrangement after a signup is removed.
func (h *LineupHandlers) HandleSignupWithdrawn(ctx context.Context, payload *signupevents.SignupWithdrawnPayloadV1) ([]handlerwrapper.Result, error) {
	return h.refresh(ctx, payload.EventID, payload.GuildID)
}

// HandleSignupBanChanged pushes the arrangement after a ban or unban,
// covering the forced unassign and the return to the bench tail.
func (h *LineupHandlers) HandleSignupBanChanged(ctx context.Context, payload *signupevents.SignupBanStatePayloadV1) ([]handlerwrapper.Result, error) {
	return h.refresh(ctx, payload.Signup.EventID, payload.GuildID)
}
