package lineuphandlers

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	lineupservice "github.com/hnaspl/woltk-calendar/app/modules/lineup/application"
	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// RoomBroadcaster pushes payloads into realtime rooms.
type RoomBroadcaster interface {
	ToEvent(ctx context.Context, eventID sharedtypes.EventID, name string, payload any) error
	ToGuild(ctx context.Context, guildID sharedtypes.GuildID, name string, payload any) error
}

// LineupHandlers implements the Handlers interface for lineup events.
type LineupHandlers struct {
	service     lineupservice.Service
	guilds      guildservice.Service
	broadcaster RoomBroadcaster
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewLineupHandlers creates a new LineupHandlers instance.
func NewLineupHandlers(
	service lineupservice.Service,
	guilds guildservice.Service,
	broadcaster RoomBroadcaster,
	logger *slog.Logger,
	tracer trace.Tracer,
) *LineupHandlers {
	return &LineupHandlers{
		service:     service,
		guilds:      guilds,
		broadcaster: broadcaster,
		logger:      logger,
		tracer:      tracer,
	}
}

// authorize gates a mutation on the manage_lineup capability. A non-nil
// result slice is the rejection to publish; (nil, nil) means authorized.
func (h *LineupHandlers) authorize(
	ctx context.Context,
	guildID sharedtypes.GuildID,
	userID sharedtypes.UserID,
	requestID string,
	eventID sharedtypes.EventID,
) ([]handlerwrapper.Result, error) {
	result, err := h.guilds.Authorize(ctx, guildID, userID, sharedtypes.CapManageLineup)
	if err != nil {
		return nil, err
	}
	if result.Failure != nil {
		return []handlerwrapper.Result{{
			Topic: lineupevents.LineupChangeFailedV1,
			Payload: &lineupevents.ChangeFailedPayloadV1{
				RequestID: requestID,
				EventID:   eventID,
				GuildID:   guildID,
				Code:      lineupevents.CodeForbidden,
				Reason:    result.Failure.(error).Error(),
			},
		}}, nil
	}
	return nil, nil
}

// mapMutation converts a mutation result into outbound messages, stamping
// the request id back on so the issuing client can correlate.
func (h *LineupHandlers) mapMutation(
	result results.OperationResult,
	requestID string,
	eventID sharedtypes.EventID,
	guildID sharedtypes.GuildID,
) []handlerwrapper.Result {
	if result.Success != nil {
		changed := result.Success.(*lineupevents.ChangedPayloadV1)
		changed.RequestID = requestID
		return []handlerwrapper.Result{{Topic: lineupevents.LineupChangedV1, Payload: changed}}
	}
	if result.Failure != nil {
		failure := result.Failure.(error)
		return []handlerwrapper.Result{{
			Topic: lineupevents.LineupChangeFailedV1,
			Payload: &lineupevents.ChangeFailedPayloadV1{
				RequestID: requestID,
				EventID:   eventID,
				GuildID:   guildID,
				Code:      failureCode(failure),
				Reason:    failure.Error(),
			},
		}}
	}
	return nil
}

// failureCode maps domain failures onto the wire taxonomy.
func failureCode(err error) string {
	var violation *raiddomain.LifecycleViolationError
	var occupied *lineupdomain.SlotOccupiedError
	var order *lineupdomain.InvalidOrderError
	var slot *lineupdomain.InvalidSlotError
	switch {
	case errors.Is(err, lineupservice.ErrConflictRejected):
		return lineupevents.CodeConflict
	case errors.As(err, &violation):
		return lineupevents.CodeFrozen
	case errors.Is(err, lineupservice.ErrEventNotFound):
		return lineupevents.CodeNotFound
	case errors.Is(err, guildservice.ErrPermissionDenied):
		return lineupevents.CodeForbidden
	case errors.As(err, &occupied), errors.As(err, &order), errors.As(err, &slot):
		return lineupevents.CodeInvalid
	default:
		return lineupevents.CodeInvalid
	}
}
