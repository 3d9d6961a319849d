package lineuphandlers

import (
	"context"

	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
)

// HandleAssignRequested seats a signup on behalf of an officer.
func (h *LineupHandlers) HandleAssignRequested(ctx context.Context, payload *lineupevents.AssignRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if out, err := h.authorize(ctx, payload.GuildID, payload.RequestedBy, payload.RequestID, payload.EventID); out != nil || err != nil {
		return out, err
	}
	result, err := h.service.Assign(ctx, payload.EventID, payload.SignupID, payload.Slot, payload.Swap)
	if err != nil {
		return nil, err
	}
	return h.mapMutation(result, payload.RequestID, payload.EventID, payload.GuildID), nil
}

// HandleUnassignRequested returns a seated signup to the bench.
func (h *LineupHandlers) HandleUnassignRequested(ctx context.Context, payload *lineupevents.UnassignRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if out, err := h.authorize(ctx, payload.GuildID, payload.RequestedBy, payload.RequestID, payload.EventID); out != nil || err != nil {
		return out, err
	}
	result, err := h.service.Unassign(ctx, payload.EventID, payload.SignupID)
	if err != nil {
		return nil, err
	}
	return h.mapMutation(result, payload.RequestID, payload.EventID, payload.GuildID), nil
}

// HandleBenchReorderRequested applies a bench permutation.
func (h *LineupHandlers) HandleBenchReorderRequested(ctx context.Context, payload *lineupevents.BenchReorderRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if out, err := h.authorize(ctx, payload.GuildID, payload.RequestedBy, payload.RequestID, payload.EventID); out != nil || err != nil {
		return out, err
	}
	result, err := h.service.ReorderBench(ctx, payload.EventID, payload.Order)
	if err != nil {
		return nil, err
	}
	return h.mapMutation(result, payload.RequestID, payload.EventID, payload.GuildID), nil
}

// HandleReplaceRequested applies a bulk role-grouped arrangement.
func (h *LineupHandlers) HandleReplaceRequested(ctx context.Context, payload *lineupevents.ReplaceRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if out, err := h.authorize(ctx, payload.GuildID, payload.RequestedBy, payload.RequestID, payload.EventID); out != nil || err != nil {
		return out, err
	}
	result, err := h.service.Replace(ctx, payload.EventID, payload.Grouped)
	if err != nil {
		return nil, err
	}
	return h.mapMutation(result, payload.RequestID, payload.EventID, payload.GuildID), nil
}

// HandleConfirmRequested marks the arrangement confirmed.
func (h *LineupHandlers) HandleConfirmRequested(ctx context.Context, payload *lineupevents.ConfirmRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if out, err := h.authorize(ctx, payload.GuildID, payload.RequestedBy, "", payload.EventID); out != nil || err != nil {
		return out, err
	}
	result, err := h.service.Confirm(ctx, payload.EventID, payload.RequestedBy)
	if err != nil {
		return nil, err
	}
	if result.Success != nil {
		return []handlerwrapper.Result{{Topic: lineupevents.LineupConfirmedV1, Payload: result.Success}}, nil
	}
	if result.Failure != nil {
		failure := result.Failure.(error)
		return []handlerwrapper.Result{{
			Topic: lineupevents.LineupChangeFailedV1,
			Payload: &lineupevents.ChangeFailedPayloadV1{
				EventID: payload.EventID,
				GuildID: payload.GuildID,
				Code:    failureCode(failure),
				Reason:  failure.Error(),
			},
		}}, nil
	}
	return nil, nil
}
