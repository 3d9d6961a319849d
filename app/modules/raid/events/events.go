// Package raidevents defines the topics and payloads for raid lifecycle
// messages on the bus. Realtime fan-out to clients uses the per-event
// subjects; these topics drive the backend handlers.
package raidevents

import (
	"time"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Stream is the JetStream stream carrying all raid subjects.
const Stream = "raids"

// Topic constants, versioned for payload evolution.
const (
	RaidCreateRequestedV1 = "raids.create.requested.v1"
	RaidCreatedV1         = "raids.created.v1"
	RaidCreationFailedV1  = "raids.creation.failed.v1"

	RaidStatusChangeRequestedV1 = "raids.status.change.requested.v1"
	RaidStatusChangedV1         = "raids.status.changed.v1"
	RaidStatusChangeFailedV1    = "raids.status.change.failed.v1"

	RaidUpdatedV1 = "raids.updated.v1"
)

// RaidCreateRequestedPayloadV1 asks the backend to create an event. The
// schedule is free text parsed server-side in the guild's timezone.
type RaidCreateRequestedPayloadV1 struct {
	GuildID      sharedtypes.GuildID     `json:"guild_id"`
	RequestedBy  sharedtypes.UserID      `json:"requested_by"`
	Title        string                  `json:"title"`
	Instance     raiddomain.RaidInstance `json:"instance"`
	Size         int                     `json:"size"`
	ScheduleText string                  `json:"schedule_text"`
	Timezone     string                  `json:"timezone"`
	Description  string                  `json:"description,omitempty"`
	RequestedAt  time.Time               `json:"requested_at"`
}

// RaidCreatedPayloadV1 announces a newly created event.
type RaidCreatedPayloadV1 struct {
	Event raiddomain.RaidEvent `json:"event"`
}

// RaidCreationFailedPayloadV1 carries the rejection reason.
type RaidCreationFailedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Reason  string              `json:"reason"`
}

// RaidStatusChangeRequestedPayloadV1 asks for a lifecycle transition.
type RaidStatusChangeRequestedPayloadV1 struct {
	EventID     sharedtypes.EventID    `json:"event_id"`
	GuildID     sharedtypes.GuildID    `json:"guild_id"`
	RequestedBy sharedtypes.UserID     `json:"requested_by"`
	To          raiddomain.EventStatus `json:"to"`
}

// RaidStatusChangedPayloadV1 announces an applied transition. Clients use
// From/To to decide whether a full snapshot refetch is needed.
type RaidStatusChangedPayloadV1 struct {
	EventID sharedtypes.EventID    `json:"event_id"`
	GuildID sharedtypes.GuildID    `json:"guild_id"`
	From    raiddomain.EventStatus `json:"from"`
	To      raiddomain.EventStatus `json:"to"`
}

// RaidStatusChangeFailedPayloadV1 carries the rejection reason.
type RaidStatusChangeFailedPayloadV1 struct {
	EventID sharedtypes.EventID `json:"event_id"`
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Reason  string              `json:"reason"`
}
