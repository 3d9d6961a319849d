package lineupdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// ErrVersionMismatch is returned when SaveLineup's expected version no
// longer matches the stored fingerprint.
var ErrVersionMismatch = errors.New("lineupdb: version mismatch")

type LineupDBImpl struct {
	DB *bun.DB
}

func (db *LineupDBImpl) GetLineup(ctx context.Context, eventID sharedtypes.EventID) (*StoredLineup, error) {
	stored := &StoredLineup{EventID: eventID}

	var state LineupState
	err := db.DB.NewSelect().Model(&state).Where("lst.event_id = ?", eventID).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return stored, nil
	case err != nil:
		return nil, fmt.Errorf("get lineup state event=%d: %w", eventID, err)
	}
	stored.Bench = state.Bench
	stored.Version = state.Version
	stored.ConfirmedBy = state.ConfirmedBy
	stored.ConfirmedAt = state.ConfirmedAt

	var slots []LineupSlot
	err = db.DB.NewSelect().Model(&slots).
		Where("ls.event_id = ?", eventID).
		Order("ls.slot_key ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("get lineup slots event=%d: %w", eventID, err)
	}
	for _, s := range slots {
		key, err := lineupdomain.ParseSlotKey(s.SlotKey)
		if err != nil {
			return nil, fmt.Errorf("stored slot key %q: %w", s.SlotKey, err)
		}
		stored.Slots = append(stored.Slots, lineupdomain.SlotAssignment{
			Slot:     key,
			Key:      s.SlotKey,
			SignupID: s.SignupID,
		})
	}
	return stored, nil
}

func (db *LineupDBImpl) SaveLineup(ctx context.Context, snapshot lineupdomain.Snapshot, expectedVersion string) error {
	return db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var state LineupState
		err := tx.NewSelect().Model(&state).
			Where("lst.event_id = ?", snapshot.EventID).
			For("UPDATE").
			Scan(ctx)
		exists := true
		switch {
		case errors.Is(err, sql.ErrNoRows):
			exists = false
		case err != nil:
			return fmt.Errorf("lock lineup state event=%d: %w", snapshot.EventID, err)
		}

		current := ""
		if exists {
			current = state.Version
		}
		if current != expectedVersion {
			return ErrVersionMismatch
		}

		if _, err := tx.NewDelete().Model(&LineupSlot{}).
			Where("event_id = ?", snapshot.EventID).
			Exec(ctx); err != nil {
			return fmt.Errorf("clear lineup slots event=%d: %w", snapshot.EventID, err)
		}

		if len(snapshot.Slots) > 0 {
			rows := make([]LineupSlot, 0, len(snapshot.Slots))
			for _, sa := range snapshot.Slots {
				rows = append(rows, LineupSlot{
					EventID:  snapshot.EventID,
					SlotKey:  sa.Key,
					SignupID: sa.SignupID,
				})
			}
			if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
				return fmt.Errorf("insert lineup slots event=%d: %w", snapshot.EventID, err)
			}
		}

		next := &LineupState{
			EventID:   snapshot.EventID,
			Bench:     snapshot.Bench,
			Version:   snapshot.Version,
			UpdatedAt: time.Now().UTC(),
		}
		if exists {
			// A content change invalidates the confirmation mark.
			if _, err := tx.NewUpdate().Model(next).
				Column("bench", "version", "updated_at").
				Set("confirmed_by = NULL").
				Set("confirmed_at = NULL").
				WherePK().
				Exec(ctx); err != nil {
				return fmt.Errorf("update lineup state event=%d: %w", snapshot.EventID, err)
			}
			return nil
		}
		if _, err := tx.NewInsert().Model(next).Exec(ctx); err != nil {
			return fmt.Errorf("insert lineup state event=%d: %w", snapshot.EventID, err)
		}
		return nil
	})
}

func (db *LineupDBImpl) Confirm(ctx context.Context, eventID sharedtypes.EventID, userID sharedtypes.UserID) error {
	now := time.Now().UTC()
	res, err := db.DB.NewUpdate().Model(&LineupState{}).
		Set("confirmed_by = ?", userID).
		Set("confirmed_at = ?", now).
		Where("event_id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("confirm lineup event=%d: %w", eventID, err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		// No state row yet means nothing was ever arranged; create the
		// row so the confirmation sticks.
		state := &LineupState{
			EventID:     eventID,
			ConfirmedBy: &userID,
			ConfirmedAt: &now,
			UpdatedAt:   now,
		}
		if _, err := db.DB.NewInsert().Model(state).Exec(ctx); err != nil {
			return fmt.Errorf("confirm lineup event=%d: %w", eventID, err)
		}
	}
	return nil
}
