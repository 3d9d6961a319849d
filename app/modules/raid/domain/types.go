// Package raiddomain holds the raid event entity and its lifecycle rules.
package raiddomain

import (
	"time"

	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// EventStatus is the lifecycle state of a raid event.
type EventStatus string

const (
	// StatusScheduled is the only state in which signups and lineup edits
	// are accepted.
	StatusScheduled EventStatus = "scheduled"
	// StatusLocked freezes the roster. Officers may still unlock.
	StatusLocked EventStatus = "locked"
	// StatusCompleted is terminal; attendance may be recorded against it.
	StatusCompleted EventStatus = "completed"
	// StatusCancelled is terminal.
	StatusCancelled EventStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusLocked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s EventStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// RaidInstance identifies the raid dungeon an event is scheduled for.
type RaidInstance string

const (
	RaidNaxxramas        RaidInstance = "naxxramas"
	RaidUlduar           RaidInstance = "ulduar"
	RaidTrialOfCrusader  RaidInstance = "trial_of_the_crusader"
	RaidIcecrownCitadel  RaidInstance = "icecrown_citadel"
	RaidVaultOfArchavon  RaidInstance = "vault_of_archavon"
	RaidObsidianSanctum  RaidInstance = "obsidian_sanctum"
	RaidEyeOfEternity    RaidInstance = "eye_of_eternity"
	RaidRubySanctum      RaidInstance = "ruby_sanctum"
)

// RaidEvent is a scheduled raid occurrence for a guild.
type RaidEvent struct {
	ID          sharedtypes.EventID `json:"id"`
	GuildID     sharedtypes.GuildID `json:"guild_id"`
	Title       string              `json:"title"`
	Instance    RaidInstance        `json:"instance"`
	Size        int                 `json:"size"`
	Status      EventStatus         `json:"status"`
	ScheduledAt time.Time           `json:"scheduled_at"`
	Description string              `json:"description,omitempty"`
	CreatedBy   sharedtypes.UserID  `json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ValidSize reports whether n is an allowed raid size.
func ValidSize(n int) bool {
	return n == 10 || n == 25
}
