package raidhandlers

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	raidservice "github.com/hnaspl/woltk-calendar/app/modules/raid/application"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// RaidHandlers implements the Handlers interface for raid events.
type RaidHandlers struct {
	service raidservice.Service
	guilds  guildservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRaidHandlers creates a new RaidHandlers instance.
func NewRaidHandlers(service raidservice.Service, guilds guildservice.Service, logger *slog.Logger, tracer trace.Tracer) *RaidHandlers {
	return &RaidHandlers{
		service: service,
		guilds:  guilds,
		logger:  logger,
		tracer:  tracer,
	}
}

// Handlers defines the contract for raid event handlers.
type Handlers interface {
	HandleCreateRequested(ctx context.Context, payload *raidevents.RaidCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleStatusChangeRequested(ctx context.Context, payload *raidevents.RaidStatusChangeRequestedPayloadV1) ([]handlerwrapper.Result, error)
}

// authorize gates a mutation on the manage_events capability. A non-nil
// result slice is the rejection to publish; (nil, nil) means authorized.
func (h *RaidHandlers) authorize(
	ctx context.Context,
	guildID sharedtypes.GuildID,
	userID sharedtypes.UserID,
	failureTopic string,
	failurePayload any,
) ([]handlerwrapper.Result, error) {
	result, err := h.guilds.Authorize(ctx, guildID, userID, sharedtypes.CapManageEvents)
	if err != nil {
		return nil, err
	}
	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: failureTopic, Payload: failurePayload}}, nil
	}
	return nil, nil
}
