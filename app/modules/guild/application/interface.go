package guildservice

import (
	"context"

	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Actor is the authenticated principal an authorization decision is made
// for. Membership is nil when the user does not belong to the guild.
type Actor struct {
	User       guilddomain.User        `json:"user"`
	Membership *guilddomain.Membership `json:"membership,omitempty"`
}

// Service defines the interface for guild operations.
type Service interface {
	// Authorize loads the user and their membership and evaluates the
	// capability. Success carries the Actor; a denial is a domain failure
	// carrying ErrPermissionDenied, not an infrastructure error.
	Authorize(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, capability sharedtypes.Capability) (results.OperationResult, error)

	GetGuild(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error)
	ListMembers(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error)
	ListCharacters(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (results.OperationResult, error)
	CreateCharacter(ctx context.Context, character *guilddomain.Character) (results.OperationResult, error)
}
