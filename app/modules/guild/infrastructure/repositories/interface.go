package guilddb

import (
	"context"

	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Repository defines the contract for guild, membership and character
// persistence. All methods are context-aware for cancellation and timeout
// propagation.
//
// Error semantics:
//   - ErrNotFound: record does not exist (Get* methods)
//   - Other errors: infrastructure failures (DB connection, query errors)
type Repository interface {
	// GetGuild retrieves a guild by ID. Returns ErrNotFound when no such
	// guild exists.
	GetGuild(ctx context.Context, guildID sharedtypes.GuildID) (*guilddomain.Guild, error)

	// CreateGuild inserts a new guild row and fills in the generated ID.
	CreateGuild(ctx context.Context, guild *guilddomain.Guild) error

	// GetUser retrieves a user by ID. Returns ErrNotFound when no such
	// user exists.
	GetUser(ctx context.Context, userID sharedtypes.UserID) (*guilddomain.User, error)

	// GetMembership retrieves the membership record for a user in a guild.
	// Returns (nil, nil) when the user is not a member; the permission
	// evaluator treats a nil membership as no guild access.
	GetMembership(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*guilddomain.Membership, error)

	// UpsertMembership creates or updates the membership role for a user.
	UpsertMembership(ctx context.Context, membership *guilddomain.Membership) error

	// RemoveMembership deletes the membership record. Idempotent.
	RemoveMembership(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) error

	// ListMembers returns all memberships for a guild ordered by join time.
	ListMembers(ctx context.Context, guildID sharedtypes.GuildID) ([]guilddomain.Membership, error)

	// GetCharacter retrieves a character by ID. Returns ErrNotFound when
	// no such character exists.
	GetCharacter(ctx context.Context, characterID sharedtypes.CharacterID) (*guilddomain.Character, error)

	// ListCharacters returns a user's characters in a guild, mains first.
	ListCharacters(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) ([]guilddomain.Character, error)

	// CreateCharacter inserts a new character row and fills in the
	// generated ID.
	CreateCharacter(ctx context.Context, character *guilddomain.Character) error
}
