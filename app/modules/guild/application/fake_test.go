package guildservice

import (
	"context"

	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	guilddb "github.com/hnaspl/woltk-calendar/app/modules/guild/infrastructure/repositories"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// FakeGuildRepository provides a programmable stub for the guilddb.Repository
// interface.
type FakeGuildRepository struct {
	trace []string

	GetGuildFunc         func(ctx context.Context, guildID sharedtypes.GuildID) (*guilddomain.Guild, error)
	CreateGuildFunc      func(ctx context.Context, guild *guilddomain.Guild) error
	GetUserFunc          func(ctx context.Context, userID sharedtypes.UserID) (*guilddomain.User, error)
	GetMembershipFunc    func(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*guilddomain.Membership, error)
	UpsertMembershipFunc func(ctx context.Context, membership *guilddomain.Membership) error
	RemoveMembershipFunc func(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) error
	ListMembersFunc      func(ctx context.Context, guildID sharedtypes.GuildID) ([]guilddomain.Membership, error)
	GetCharacterFunc     func(ctx context.Context, characterID sharedtypes.CharacterID) (*guilddomain.Character, error)
	ListCharactersFunc   func(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) ([]guilddomain.Character, error)
	CreateCharacterFunc  func(ctx context.Context, character *guilddomain.Character) error
}

func NewFakeGuildRepository() *FakeGuildRepository {
	return &FakeGuildRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeGuildRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGuildRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGuildRepository) GetGuild(ctx context.Context, guildID sharedtypes.GuildID) (*guilddomain.Guild, error) {
	f.record("GetGuild")
	if f.GetGuildFunc != nil {
		return f.GetGuildFunc(ctx, guildID)
	}
	return nil, guilddb.ErrNotFound
}

func (f *FakeGuildRepository) CreateGuild(ctx context.Context, guild *guilddomain.Guild) error {
	f.record("CreateGuild")
	if f.CreateGuildFunc != nil {
		return f.CreateGuildFunc(ctx, guild)
	}
	return nil
}

func (f *FakeGuildRepository) GetUser(ctx context.Context, userID sharedtypes.UserID) (*guilddomain.User, error) {
	f.record("GetUser")
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, userID)
	}
	return nil, guilddb.ErrNotFound
}

func (f *FakeGuildRepository) GetMembership(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*guilddomain.Membership, error) {
	f.record("GetMembership")
	if f.GetMembershipFunc != nil {
		return f.GetMembershipFunc(ctx, guildID, userID)
	}
	return nil, nil
}

func (f *FakeGuildRepository) UpsertMembership(ctx context.Context, membership *guilddomain.Membership) error {
	f.record("UpsertMembership")
	if f.UpsertMembershipFunc != nil {
		return f.UpsertMembershipFunc(ctx, membership)
	}
	return nil
}

func (f *FakeGuildRepository) RemoveMembership(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) error {
	f.record("RemoveMembership")
	if f.RemoveMembershipFunc != nil {
		return f.RemoveMembershipFunc(ctx, guildID, userID)
	}
	return nil
}

func (f *FakeGuildRepository) ListMembers(ctx context.Context, guildID sharedtypes.GuildID) ([]guilddomain.Membership, error) {
	f.record("ListMembers")
	if f.ListMembersFunc != nil {
		return f.ListMembersFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *FakeGuildRepository) GetCharacter(ctx context.Context, characterID sharedtypes.CharacterID) (*guilddomain.Character, error) {
	f.record("GetCharacter")
	if f.GetCharacterFunc != nil {
		return f.GetCharacterFunc(ctx, characterID)
	}
	return nil, guilddb.ErrNotFound
}

func (f *FakeGuildRepository) ListCharacters(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) ([]guilddomain.Character, error) {
	f.record("ListCharacters")
	if f.ListCharactersFunc != nil {
		return f.ListCharactersFunc(ctx, guildID, userID)
	}
	return nil, nil
}

func (f *FakeGuildRepository) CreateCharacter(ctx context.Context, character *guilddomain.Character) error {
	f.record("CreateCharacter")
	if f.CreateCharacterFunc != nil {
		return f.CreateCharacterFunc(ctx, character)
	}
	return nil
}

var _ guilddb.Repository = (*FakeGuildRepository)(nil)
