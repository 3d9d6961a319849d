package lineupdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// LineupSlot is the lineup_slots table model, one row per occupied seat.
type LineupSlot struct {
	bun.BaseModel `bun:"table:lineup_slots,alias:ls"`

	EventID  sharedtypes.EventID  `bun:"event_id,pk,notnull,unique:uq_lineup_slot_signup"`
	SlotKey  string               `bun:"slot_key,pk,notnull,type:varchar(20)"`
	SignupID sharedtypes.SignupID `bun:"signup_id,notnull,unique:uq_lineup_slot_signup"`
}

// LineupState is the lineup_states table model, one row per event carrying
// the bench order, the version fingerprint and the confirmation mark.
type LineupState struct {
	bun.BaseModel `bun:"table:lineup_states,alias:lst"`

	EventID     sharedtypes.EventID    `bun:"event_id,pk,notnull"`
	Bench       []sharedtypes.SignupID `bun:"bench,type:jsonb"`
	Version     string                 `bun:"version,notnull,default:''"`
	ConfirmedBy *sharedtypes.UserID    `bun:"confirmed_by,nullzero"`
	ConfirmedAt *time.Time             `bun:"confirmed_at,nullzero"`
	UpdatedAt   time.Time              `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
