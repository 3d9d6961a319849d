// Package guilddomain holds guild membership types and the permission
// evaluator gating every lineup mutation.
package guilddomain

import (
	"time"

	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// GuildRole is a member's rank within one guild.
type GuildRole string

const (
	RoleMember     GuildRole = "member"
	RoleOfficer    GuildRole = "officer"
	RoleGuildAdmin GuildRole = "guild_admin"
)

// Guild is a raiding guild.
type Guild struct {
	ID        sharedtypes.GuildID `json:"id"`
	Name      string              `json:"name"`
	RealmName string              `json:"realm_name"`
	Faction   string              `json:"faction,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// User is an account. IsAdmin is the site-wide flag, independent of any
// guild membership.
type User struct {
	ID       sharedtypes.UserID `json:"id"`
	Username string             `json:"username"`
	IsAdmin  bool               `json:"is_admin"`
}

// Membership ties a user to a guild with a role. Absence of a membership
// record means no access to guild-scoped operations.
type Membership struct {
	GuildID  sharedtypes.GuildID `json:"guild_id"`
	UserID   sharedtypes.UserID  `json:"user_id"`
	Role     GuildRole           `json:"role"`
	JoinedAt time.Time           `json:"joined_at"`
}

// WowClass is a playable class.
type WowClass string

const (
	ClassDeathKnight WowClass = "Death Knight"
	ClassDruid       WowClass = "Druid"
	ClassHunter      WowClass = "Hunter"
	ClassMage        WowClass = "Mage"
	ClassPaladin     WowClass = "Paladin"
	ClassPriest      WowClass = "Priest"
	ClassRogue       WowClass = "Rogue"
	ClassShaman      WowClass = "Shaman"
	ClassWarlock     WowClass = "Warlock"
	ClassWarrior     WowClass = "Warrior"
)

// Valid reports whether the class is one of the known playable classes.
func (c WowClass) Valid() bool {
	_, ok := classRoles[c]
	return ok
}

// Character belongs to exactly one user and one guild. At most one main
// character per user per guild; the server enforces it, this code assumes it.
type Character struct {
	ID        sharedtypes.CharacterID `json:"id"`
	GuildID   sharedtypes.GuildID     `json:"guild_id"`
	UserID    sharedtypes.UserID      `json:"user_id"`
	Name      string                  `json:"name"`
	Class     WowClass                `json:"class"`
	IsMain    bool                    `json:"is_main"`
	GearScore int                     `json:"gear_score,omitempty"`
}

// classRoles maps each class to the lineup role categories it can fill.
// Tank-capable classes may also take the main/off tank seats.
var classRoles = map[WowClass][]string{
	ClassDeathKnight: {"main_tank", "off_tank", "tank", "dps"},
	ClassDruid:       {"main_tank", "off_tank", "tank", "healer", "dps"},
	ClassHunter:      {"dps"},
	ClassMage:        {"dps"},
	ClassPaladin:     {"main_tank", "off_tank", "tank", "healer", "dps"},
	ClassPriest:      {"healer", "dps"},
	ClassRogue:       {"dps"},
	ClassShaman:      {"healer", "dps"},
	ClassWarlock:     {"dps"},
	ClassWarrior:     {"main_tank", "off_tank", "tank", "dps"},
}

// AllowedRoles returns the lineup roles a class can take, nil for an
// unknown class.
func AllowedRoles(class WowClass) []string {
	roles, ok := classRoles[class]
	if !ok {
		return nil
	}
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}

// CanTakeRole reports whether a class can fill a lineup role. Unknown
// classes are permissive: the server schema is authoritative and new
// classes must not brick the client.
func CanTakeRole(class WowClass, role string) bool {
	roles, ok := classRoles[class]
	if !ok {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
