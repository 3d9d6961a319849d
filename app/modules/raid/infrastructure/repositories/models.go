package raiddb

import (
	"time"

	"github.com/uptrace/bun"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// RaidEvent is the raid_events table model.
type RaidEvent struct {
	bun.BaseModel `bun:"table:raid_events,alias:re"`

	ID          sharedtypes.EventID     `bun:"id,pk,autoincrement"`
	GuildID     sharedtypes.GuildID     `bun:"guild_id,notnull"`
	Title       string                  `bun:"title,notnull,type:varchar(120)"`
	Instance    raiddomain.RaidInstance `bun:"instance,notnull,type:varchar(40)"`
	Size        int                     `bun:"size,notnull"`
	Status      raiddomain.EventStatus  `bun:"status,notnull,default:'scheduled',type:varchar(20)"`
	ScheduledAt time.Time               `bun:"scheduled_at,notnull"`
	Description string                  `bun:"description,nullzero"`
	CreatedBy   sharedtypes.UserID      `bun:"created_by,notnull"`
	CreatedAt   time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time               `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (e *RaidEvent) toDomain() *raiddomain.RaidEvent {
	if e == nil {
		return nil
	}
	return &raiddomain.RaidEvent{
		ID:          e.ID,
		GuildID:     e.GuildID,
		Title:       e.Title,
		Instance:    e.Instance,
		Size:        e.Size,
		Status:      e.Status,
		ScheduledAt: e.ScheduledAt,
		Description: e.Description,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func fromDomain(e *raiddomain.RaidEvent) *RaidEvent {
	if e == nil {
		return nil
	}
	return &RaidEvent{
		ID:          e.ID,
		GuildID:     e.GuildID,
		Title:       e.Title,
		Instance:    e.Instance,
		Size:        e.Size,
		Status:      e.Status,
		ScheduledAt: e.ScheduledAt,
		Description: e.Description,
		CreatedBy:   e.CreatedBy,
	}
}
