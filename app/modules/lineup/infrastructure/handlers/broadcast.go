package lineuphandlers

import (
	"context"

	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
)

// HandleLineupChanged fans an applied change out to the event room.
func (h *LineupHandlers) HandleLineupChanged(ctx context.Context, payload *lineupevents.ChangedPayloadV1) ([]handlerwrapper.Result, error) {
	if err := h.broadcaster.ToEvent(ctx, payload.EventID, lineupevents.MsgLineupChanged, payload); err != nil {
		return nil, err
	}
	return nil, nil
}

// HandleChangeFailed fans a rejection out so the issuing client rolls back.
func (h *LineupHandlers) HandleChangeFailed(ctx context.Context, payload *lineupevents.ChangeFailedPayloadV1) ([]handlerwrapper.Result, error) {
	if err := h.broadcaster.ToEvent(ctx, payload.EventID, lineupevents.MsgChangeFailed, payload); err != nil {
		return nil, err
	}
	return nil, nil
}

// HandleLineupConfirmed fans a confirmation mark out to the event room.
func (h *LineupHandlers) HandleLineupConfirmed(ctx context.Context, payload *lineupevents.ConfirmedPayloadV1) ([]handlerwrapper.Result, error) {
	if err := h.broadcaster.ToEvent(ctx, payload.EventID, lineupevents.MsgLineupConfirmed, payload); err != nil {
		return nil, err
	}
	return nil, nil
}

// HandleRaidStatusChanged fans a status transition out to the event room
// and the guild room, where calendar views track it.
func (h *LineupHandlers) HandleRaidStatusChanged(ctx context.Context, payload *raidevents.RaidStatusChangedPayloadV1) ([]handlerwrapper.Result, error) {
	if err := h.broadcaster.ToEvent(ctx, payload.EventID, lineupevents.MsgStatusChanged, payload); err != nil {
		return nil, err
	}
	if err := h.broadcaster.ToGuild(ctx, payload.GuildID, lineupevents.MsgStatusChanged, payload); err != nil {
		return nil, err
	}
	return nil, nil
}
