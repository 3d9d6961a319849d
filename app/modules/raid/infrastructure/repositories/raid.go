package raiddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

var (
	// ErrNotFound is returned when a requested event does not exist.
	ErrNotFound = errors.New("raiddb: not found")
	// ErrStaleStatus is returned when a status compare-and-set matched no row.
	ErrStaleStatus = errors.New("raiddb: stale status")
)

type RaidDBImpl struct {
	DB *bun.DB
}

func (db *RaidDBImpl) GetEvent(ctx context.Context, eventID sharedtypes.EventID) (*raiddomain.RaidEvent, error) {
	var event RaidEvent
	err := db.DB.NewSelect().Model(&event).Where("re.id = ?", eventID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event %d: %w", eventID, err)
	}
	return event.toDomain(), nil
}

func (db *RaidDBImpl) CreateEvent(ctx context.Context, event *raiddomain.RaidEvent) error {
	model := fromDomain(event)
	if model.Status == "" {
		model.Status = raiddomain.StatusScheduled
	}
	if _, err := db.DB.NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = model.ID
	event.Status = model.Status
	event.CreatedAt = model.CreatedAt
	event.UpdatedAt = model.UpdatedAt
	return nil
}

func (db *RaidDBImpl) UpdateEvent(ctx context.Context, event *raiddomain.RaidEvent) error {
	res, err := db.DB.NewUpdate().Model(fromDomain(event)).
		Column("title", "description", "size", "scheduled_at").
		Set("updated_at = current_timestamp").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update event %d: %w", event.ID, err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *RaidDBImpl) UpdateStatus(ctx context.Context, eventID sharedtypes.EventID, from, to raiddomain.EventStatus) error {
	res, err := db.DB.NewUpdate().Model(&RaidEvent{}).
		Set("status = ?", to).
		Set("updated_at = current_timestamp").
		Where("id = ?", eventID).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update status event=%d %s->%s: %w", eventID, from, to, err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (db *RaidDBImpl) ListUpcoming(ctx context.Context, guildID sharedtypes.GuildID, after time.Time) ([]raiddomain.RaidEvent, error) {
	var rows []RaidEvent
	err := db.DB.NewSelect().Model(&rows).
		Where("re.guild_id = ?", guildID).
		Where("re.status IN (?)", bun.In([]raiddomain.EventStatus{raiddomain.StatusScheduled, raiddomain.StatusLocked})).
		Where("re.scheduled_at >= ?", after).
		Order("re.scheduled_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list upcoming guild=%d: %w", guildID, err)
	}
	events := make([]raiddomain.RaidEvent, 0, len(rows))
	for i := range rows {
		events = append(events, *rows[i].toDomain())
	}
	return events, nil
}
