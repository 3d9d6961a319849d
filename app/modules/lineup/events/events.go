// Package lineupevents defines the topics and payloads for lineup mutation
// messages, plus the realtime subjects clients subscribe to.
package lineupevents

import (
	"fmt"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Stream is the JetStream stream carrying all lineup subjects.
const Stream = "lineups"

const (
	LineupAssignRequestedV1       = "lineups.assign.requested.v1"
	LineupUnassignRequestedV1     = "lineups.unassign.requested.v1"
	LineupBenchReorderRequestedV1 = "lineups.bench.reorder.requested.v1"
	LineupReplaceRequestedV1      = "lineups.replace.requested.v1"
	LineupConfirmRequestedV1      = "lineups.confirm.requested.v1"

	LineupChangedV1      = "lineups.changed.v1"
	LineupChangeFailedV1 = "lineups.change.failed.v1"
	LineupConfirmedV1    = "lineups.confirmed.v1"
)

// Realtime room message names. Requests flow client to backend, the rest
// fan out to every client joined to the event room.
const (
	MsgAssignRequest       = "assign_request"
	MsgUnassignRequest     = "unassign_request"
	MsgBenchReorderRequest = "bench_reorder_request"
	MsgReplaceRequest      = "replace_request"
	MsgConfirmRequest      = "confirm_request"

	MsgLineupChanged   = "lineup_changed"
	MsgChangeFailed    = "lineup_change_failed"
	MsgStatusChanged   = "event_status_changed"
	MsgLineupConfirmed = "lineup_confirmed"
)

// Rejection codes for ChangeFailedPayloadV1.
const (
	CodeConflict  = "conflict"
	CodeFrozen    = "event_frozen"
	CodeInvalid   = "invalid"
	CodeNotFound  = "not_found"
	CodeForbidden = "forbidden"
)

// EventSubject is the realtime subject for one message name in an event
// room. Clients joined to the room subscribe the room wildcard and see
// every name published under it.
func EventSubject(eventID sharedtypes.EventID, name string) string {
	return fmt.Sprintf("raids.event.%d.%s", eventID, name)
}

// GuildSubject is the realtime subject for guild-wide announcements.
func GuildSubject(guildID sharedtypes.GuildID, name string) string {
	return fmt.Sprintf("raids.guild.%d.%s", guildID, name)
}

// AssignRequestedPayloadV1 asks to seat a signup, optionally swapping with
// the current occupant.
type AssignRequestedPayloadV1 struct {
	RequestID   string               `json:"request_id,omitempty"`
	EventID     sharedtypes.EventID  `json:"event_id"`
	GuildID     sharedtypes.GuildID  `json:"guild_id"`
	RequestedBy sharedtypes.UserID   `json:"requested_by"`
	SignupID    sharedtypes.SignupID `json:"signup_id"`
	Slot        string               `json:"slot"`
	Swap        bool                 `json:"swap,omitempty"`
}

// UnassignRequestedPayloadV1 asks to return a signup to the bench.
type UnassignRequestedPayloadV1 struct {
	RequestID   string               `json:"request_id,omitempty"`
	EventID     sharedtypes.EventID  `json:"event_id"`
	GuildID     sharedtypes.GuildID  `json:"guild_id"`
	RequestedBy sharedtypes.UserID   `json:"requested_by"`
	SignupID    sharedtypes.SignupID `json:"signup_id"`
}

// BenchReorderRequestedPayloadV1 asks to replace the bench order with a
// permutation of itself.
type BenchReorderRequestedPayloadV1 struct {
	RequestID   string                 `json:"request_id,omitempty"`
	EventID     sharedtypes.EventID    `json:"event_id"`
	GuildID     sharedtypes.GuildID    `json:"guild_id"`
	RequestedBy sharedtypes.UserID     `json:"requested_by"`
	Order       []sharedtypes.SignupID `json:"order"`
}

// ReplaceRequestedPayloadV1 asks for a bulk replacement of the whole
// arrangement, grouped by role.
type ReplaceRequestedPayloadV1 struct {
	RequestID   string               `json:"request_id,omitempty"`
	EventID     sharedtypes.EventID  `json:"event_id"`
	GuildID     sharedtypes.GuildID  `json:"guild_id"`
	RequestedBy sharedtypes.UserID   `json:"requested_by"`
	Grouped     lineupdomain.Grouped `json:"grouped"`
}

// ConfirmRequestedPayloadV1 asks to mark the current arrangement confirmed.
type ConfirmRequestedPayloadV1 struct {
	EventID     sharedtypes.EventID `json:"event_id"`
	GuildID     sharedtypes.GuildID `json:"guild_id"`
	RequestedBy sharedtypes.UserID  `json:"requested_by"`
}

// ChangedPayloadV1 announces an applied mutation. Version is the fingerprint
// of the arrangement after the change; clients already at that version may
// apply Change without refetching.
type ChangedPayloadV1 struct {
	RequestID string                 `json:"request_id,omitempty"`
	EventID   sharedtypes.EventID    `json:"event_id"`
	GuildID   sharedtypes.GuildID    `json:"guild_id"`
	Change    lineupdomain.Change    `json:"change"`
	Version   string                 `json:"version"`
	Snapshot  *lineupdomain.Snapshot `json:"snapshot,omitempty"`
}

// ChangeFailedPayloadV1 carries a rejection. Code mirrors the HTTP error
// taxonomy so clients branch without string matching.
type ChangeFailedPayloadV1 struct {
	RequestID string              `json:"request_id,omitempty"`
	EventID   sharedtypes.EventID `json:"event_id"`
	GuildID   sharedtypes.GuildID `json:"guild_id"`
	Code      string              `json:"code"`
	Reason    string              `json:"reason"`
}

// ConfirmedPayloadV1 announces a confirmation mark.
type ConfirmedPayloadV1 struct {
	EventID     sharedtypes.EventID `json:"event_id"`
	GuildID     sharedtypes.GuildID `json:"guild_id"`
	ConfirmedBy sharedtypes.UserID  `json:"confirmed_by"`
	Version     string              `json:"version"`
}
