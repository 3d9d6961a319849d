package guilddb

import (
	"time"

	"github.com/uptrace/bun"

	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Guild is the guilds table model.
type Guild struct {
	bun.BaseModel `bun:"table:guilds,alias:g"`

	ID        sharedtypes.GuildID `bun:"id,pk,autoincrement"`
	Name      string              `bun:"name,notnull,type:varchar(100)"`
	RealmName string              `bun:"realm_name,notnull,type:varchar(64)"`
	Faction   string              `bun:"faction,nullzero,type:varchar(10)"`
	CreatedAt time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// User is the users table model.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        sharedtypes.UserID `bun:"id,pk,autoincrement"`
	Username  string             `bun:"username,notnull,unique,type:varchar(80)"`
	IsAdmin   bool               `bun:"is_admin,notnull,default:false"`
	CreatedAt time.Time          `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Membership is the guild_members table model, one row per (guild, user).
type Membership struct {
	bun.BaseModel `bun:"table:guild_members,alias:gm"`

	GuildID  sharedtypes.GuildID   `bun:"guild_id,pk,notnull"`
	UserID   sharedtypes.UserID    `bun:"user_id,pk,notnull"`
	Role     guilddomain.GuildRole `bun:"role,notnull,default:'member',type:varchar(20)"`
	JoinedAt time.Time             `bun:"joined_at,nullzero,notnull,default:current_timestamp"`
}

// Character is the characters table model.
type Character struct {
	bun.BaseModel `bun:"table:characters,alias:c"`

	ID        sharedtypes.CharacterID `bun:"id,pk,autoincrement"`
	GuildID   sharedtypes.GuildID     `bun:"guild_id,notnull"`
	UserID    sharedtypes.UserID      `bun:"user_id,notnull"`
	Name      string                  `bun:"name,notnull,type:varchar(12)"`
	Class     guilddomain.WowClass    `bun:"class,notnull,type:varchar(20)"`
	IsMain    bool                    `bun:"is_main,notnull,default:false"`
	GearScore int                     `bun:"gear_score,nullzero"`
	CreatedAt time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (g *Guild) toDomain() *guilddomain.Guild {
	if g == nil {
		return nil
	}
	return &guilddomain.Guild{
		ID:        g.ID,
		Name:      g.Name,
		RealmName: g.RealmName,
		Faction:   g.Faction,
		CreatedAt: g.CreatedAt,
	}
}

func (u *User) toDomain() *guilddomain.User {
	if u == nil {
		return nil
	}
	return &guilddomain.User{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

func (m *Membership) toDomain() *guilddomain.Membership {
	if m == nil {
		return nil
	}
	return &guilddomain.Membership{
		GuildID:  m.GuildID,
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

func (c *Character) toDomain() *guilddomain.Character {
	if c == nil {
		return nil
	}
	return &guilddomain.Character{
		ID:        c.ID,
		GuildID:   c.GuildID,
		UserID:    c.UserID,
		Name:      c.Name,
		Class:     c.Class,
		IsMain:    c.IsMain,
		GearScore: c.GearScore,
	}
}
