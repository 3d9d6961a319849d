package raidservice

import (
	"context"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Service defines the interface for raid event operations.
type Service interface {
	// CreateRaid parses the schedule text and persists a new scheduled
	// event. Success carries the created RaidEvent; validation and parse
	// problems are domain failures.
	CreateRaid(ctx context.Context, request raidevents.RaidCreateRequestedPayloadV1) (results.OperationResult, error)

	// ChangeStatus applies a lifecycle transition. Success carries a
	// RaidStatusChangedPayloadV1; a disallowed transition is a domain
	// failure carrying the LifecycleViolationError.
	ChangeStatus(ctx context.Context, eventID sharedtypes.EventID, to raiddomain.EventStatus) (results.OperationResult, error)

	// GetRaid retrieves an event by ID.
	GetRaid(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error)

	// ListUpcoming returns a guild's upcoming events.
	ListUpcoming(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error)

	// UpdateRaid persists title, description, size and schedule changes on
	// a mutable event.
	UpdateRaid(ctx context.Context, event raiddomain.RaidEvent) (results.OperationResult, error)
}
