// Package signupevents defines the signup module's message topics and
// payload schemas. Lineup membership follows the signups table, so every
// mutation here also moves someone on or off the bench.
package signupevents

import (
	signupdomain "github.com/hnaspl/woltk-calendar/app/modules/signup/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Stream is the JetStream stream for signup subjects.
const Stream = "signups"

const (
	SignupCreateRequested = "signups.create.requested.v1"
	SignupCreated         = "signups.created.v1"
	SignupCreationFailed  = "signups.creation.failed.v1"

	SignupUpdateRequested = "signups.update.requested.v1"
	SignupUpdated         = "signups.updated.v1"
	SignupUpdateFailed    = "signups.update.failed.v1"

	SignupWithdrawRequested = "signups.withdraw.requested.v1"
	SignupWithdrawn         = "signups.withdrawn.v1"
	SignupWithdrawFailed    = "signups.withdraw.failed.v1"

	SignupBanRequested = "signups.ban.requested.v1"
	SignupBanned       = "signups.banned.v1"
	SignupUnbanned     = "signups.unbanned.v1"
	SignupBanFailed    = "signups.ban.failed.v1"
)

// SignupCreateRequestedPayloadV1 asks for a character to be signed up.
type SignupCreateRequestedPayloadV1 struct {
	EventID     sharedtypes.EventID     `json:"event_id"`
	GuildID     sharedtypes.GuildID     `json:"guild_id"`
	UserID      sharedtypes.UserID      `json:"user_id"`
	CharacterID sharedtypes.CharacterID `json:"character_id"`
	Role        string                  `json:"chosen_role"`
	Note        string                  `json:"note,omitempty"`
}

// SignupCreatedPayloadV1 announces a stored signup.
type SignupCreatedPayloadV1 struct {
	Signup  signupdomain.Signup `json:"signup"`
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

// SignupCreationFailedPayloadV1 carries the rejection reason.
type SignupCreationFailedPayloadV1 struct {
	EventID     sharedtypes.EventID     `json:"event_id"`
	CharacterID sharedtypes.CharacterID `json:"character_id"`
	Reason      string                  `json:"reason"`
}

// SignupUpdateRequestedPayloadV1 changes a signup's role or note.
type SignupUpdateRequestedPayloadV1 struct {
	SignupID sharedtypes.SignupID `json:"signup_id"`
	Role     string               `json:"chosen_role"`
	Note     string               `json:"note,omitempty"`
}

// SignupUpdatedPayloadV1 announces the new signup state.
type SignupUpdatedPayloadV1 struct {
	Signup  signupdomain.Signup `json:"signup"`
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

// SignupUpdateFailedPayloadV1 carries the rejection reason.
type SignupUpdateFailedPayloadV1 struct {
	SignupID sharedtypes.SignupID `json:"signup_id"`
	Reason   string               `json:"reason"`
}

// SignupWithdrawRequestedPayloadV1 removes a signup entirely.
type SignupWithdrawRequestedPayloadV1 struct {
	SignupID sharedtypes.SignupID `json:"signup_id"`
}

// SignupWithdrawnPayloadV1 announces the removal.
type SignupWithdrawnPayloadV1 struct {
	SignupID sharedtypes.SignupID `json:"signup_id"`
	EventID  sharedtypes.EventID  `json:"event_id"`
	GuildID  sharedtypes.GuildID  `json:"guild_id"`
}

// SignupWithdrawFailedPayloadV1 carries the rejection reason.
type SignupWithdrawFailedPayloadV1 struct {
	SignupID sharedtypes.SignupID `json:"signup_id"`
	Reason   string               `json:"reason"`
}

// SignupBanRequestedPayloadV1 sets or clears a signup's ban.
type SignupBanRequestedPayloadV1 struct {
	SignupID sharedtypes.SignupID `json:"signup_id"`
	Banned   bool                 `json:"banned"`
}

// SignupBanStatePayloadV1 announces the resulting ban state. Published
// under SignupBanned or SignupUnbanned.
type SignupBanStatePayloadV1 struct {
	Signup  signupdomain.Signup `json:"signup"`
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

// SignupBanFailedPayloadV1 carries the rejection reason.
type SignupBanFailedPayloadV1 struct {
	SignupID sharedtypes.SignupID `json:"signup_id"`
	Reason   string               `json:"reason"`
}
