package guilddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("guilddb: not found")

type GuildDBImpl struct {
	DB *bun.DB
}

func (db *GuildDBImpl) GetGuild(ctx context.Context, guildID sharedtypes.GuildID) (*guilddomain.Guild, error) {
	var guild Guild
	err := db.DB.NewSelect().Model(&guild).Where("g.id = ?", guildID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get guild %d: %w", guildID, err)
	}
	return guild.toDomain(), nil
}

func (db *GuildDBImpl) CreateGuild(ctx context.Context, guild *guilddomain.Guild) error {
	model := &Guild{
		Name:      guild.Name,
		RealmName: guild.RealmName,
		Faction:   guild.Faction,
	}
	if _, err := db.DB.NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("create guild: %w", err)
	}
	guild.ID = model.ID
	guild.CreatedAt = model.CreatedAt
	return nil
}

func (db *GuildDBImpl) GetUser(ctx context.Context, userID sharedtypes.UserID) (*guilddomain.User, error) {
	var user User
	err := db.DB.NewSelect().Model(&user).Where("u.id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return user.toDomain(), nil
}

func (db *GuildDBImpl) GetMembership(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*guilddomain.Membership, error) {
	var membership Membership
	err := db.DB.NewSelect().Model(&membership).
		Where("gm.guild_id = ?", guildID).
		Where("gm.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership guild=%d user=%d: %w", guildID, userID, err)
	}
	return membership.toDomain(), nil
}

func (db *GuildDBImpl) UpsertMembership(ctx context.Context, membership *guilddomain.Membership) error {
	model := &Membership{
		GuildID: membership.GuildID,
		UserID:  membership.UserID,
		Role:    membership.Role,
	}
	_, err := db.DB.NewInsert().Model(model).
		On("CONFLICT (guild_id, user_id) DO UPDATE").
		Set("role = EXCLUDED.role").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert membership guild=%d user=%d: %w", membership.GuildID, membership.UserID, err)
	}
	return nil
}

func (db *GuildDBImpl) RemoveMembership(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) error {
	_, err := db.DB.NewDelete().Model(&Membership{}).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("remove membership guild=%d user=%d: %w", guildID, userID, err)
	}
	return nil
}

func (db *GuildDBImpl) ListMembers(ctx context.Context, guildID sharedtypes.GuildID) ([]guilddomain.Membership, error) {
	var rows []Membership
	err := db.DB.NewSelect().Model(&rows).
		Where("gm.guild_id = ?", guildID).
		Order("gm.joined_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members guild=%d: %w", guildID, err)
	}
	members := make([]guilddomain.Membership, 0, len(rows))
	for i := range rows {
		members = append(members, *rows[i].toDomain())
	}
	return members, nil
}

func (db *GuildDBImpl) GetCharacter(ctx context.Context, characterID sharedtypes.CharacterID) (*guilddomain.Character, error) {
	var character Character
	err := db.DB.NewSelect().Model(&character).Where("c.id = ?", characterID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get character %d: %w", characterID, err)
	}
	return character.toDomain(), nil
}

func (db *GuildDBImpl) ListCharacters(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) ([]guilddomain.Character, error) {
	var rows []Character
	err := db.DB.NewSelect().Model(&rows).
		Where("c.guild_id = ?", guildID).
		Where("c.user_id = ?", userID).
		Order("c.is_main DESC").
		Order("c.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list characters guild=%d user=%d: %w", guildID, userID, err)
	}
	characters := make([]guilddomain.Character, 0, len(rows))
	for i := range rows {
		characters = append(characters, *rows[i].toDomain())
	}
	return characters, nil
}

func (db *GuildDBImpl) CreateCharacter(ctx context.Context, character *guilddomain.Character) error {
	model := &Character{
		GuildID:   character.GuildID,
		UserID:    character.UserID,
		Name:      character.Name,
		Class:     character.Class,
		IsMain:    character.IsMain,
		GearScore: character.GearScore,
	}
	if _, err := db.DB.NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("create character: %w", err)
	}
	character.ID = model.ID
	return nil
}
