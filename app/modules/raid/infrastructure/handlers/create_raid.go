package raidhandlers

import (
	"context"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
)

// HandleCreateRequested creates a scheduled raid event.
func (h *RaidHandlers) HandleCreateRequested(ctx context.Context, payload *raidevents.RaidCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if out, err := h.authorize(ctx, payload.GuildID, payload.RequestedBy,
		raidevents.RaidCreationFailedV1,
		&raidevents.RaidCreationFailedPayloadV1{GuildID: payload.GuildID, Reason: "permission denied"},
	); out != nil || err != nil {
		return out, err
	}

	result, err := h.service.CreateRaid(ctx, *payload)
	if err != nil {
		return nil, err
	}

	if result.Success != nil {
		event := result.Success.(*raiddomain.RaidEvent)
		return []handlerwrapper.Result{{
			Topic:   raidevents.RaidCreatedV1,
			Payload: &raidevents.RaidCreatedPayloadV1{Event: *event},
		}}, nil
	}
	if result.Failure != nil {
		return []handlerwrapper.Result{{
			Topic: raidevents.RaidCreationFailedV1,
			Payload: &raidevents.RaidCreationFailedPayloadV1{
				GuildID: payload.GuildID,
				Reason:  result.Failure.(error).Error(),
			},
		}}, nil
	}
	return nil, nil
}

// HandleStatusChangeRequested applies a lifecycle transition.
func (h *RaidHandlers) HandleStatusChangeRequested(ctx context.Context, payload *raidevents.RaidStatusChangeRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if out, err := h.authorize(ctx, payload.GuildID, payload.RequestedBy,
		raidevents.RaidStatusChangeFailedV1,
		&raidevents.RaidStatusChangeFailedPayloadV1{EventID: payload.EventID, GuildID: payload.GuildID, Reason: "permission denied"},
	); out != nil || err != nil {
		return out, err
	}

	result, err := h.service.ChangeStatus(ctx, payload.EventID, payload.To)
	if err != nil {
		return nil, err
	}

	if result.Success != nil {
		return []handlerwrapper.Result{{
			Topic:   raidevents.RaidStatusChangedV1,
			Payload: result.Success,
		}}, nil
	}
	if result.Failure != nil {
		return []handlerwrapper.Result{{
			Topic: raidevents.RaidStatusChangeFailedV1,
			Payload: &raidevents.RaidStatusChangeFailedPayloadV1{
				EventID: payload.EventID,
				GuildID: payload.GuildID,
				Reason:  result.Failure.(error).Error(),
			},
		}}, nil
	}
	return nil, nil
}
