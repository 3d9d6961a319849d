package attendancedb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	attendancedomain "github.com/hnaspl/woltk-calendar/app/modules/attendance/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

type AttendanceDBImpl struct {
	DB *bun.DB
}

func (db *AttendanceDBImpl) Upsert(ctx context.Context, record *attendancedomain.Record) error {
	model := &Attendance{
		EventID:     record.EventID,
		GuildID:     record.GuildID,
		CharacterID: record.CharacterID,
		Outcome:     record.Outcome,
		Note:        record.Note,
		RecordedBy:  record.RecordedBy,
	}
	_, err := db.DB.NewInsert().Model(model).
		On("CONFLICT (event_id, character_id) DO UPDATE").
		Set("outcome = EXCLUDED.outcome").
		Set("note = EXCLUDED.note").
		Set("recorded_by = EXCLUDED.recorded_by").
		Set("recorded_at = current_timestamp").
		Returning("id, recorded_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	record.ID = model.ID
	record.RecordedAt = model.RecordedAt
	return nil
}

func (db *AttendanceDBImpl) ListByEvent(ctx context.Context, eventID sharedtypes.EventID) ([]attendancedomain.Record, error) {
	var models []Attendance
	err := db.DB.NewSelect().Model(&models).
		Where("a.event_id = ?", eventID).
		Order("a.character_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendance for event %d: %w", eventID, err)
	}
	records := make([]attendancedomain.Record, 0, len(models))
	for i := range models {
		records = append(records, *models[i].toDomain())
	}
	return records, nil
}

func (db *AttendanceDBImpl) Summarize(ctx context.Context, guildID sharedtypes.GuildID) ([]attendancedomain.CharacterSummary, error) {
	var rows []summaryRow
	err := db.DB.NewSelect().
		TableExpr("attendance AS a").
		ColumnExpr("a.character_id").
		ColumnExpr("c.name AS character_name").
		ColumnExpr("count(*) FILTER (WHERE a.outcome = 'attended') AS attended").
		ColumnExpr("count(*) FILTER (WHERE a.outcome = 'late') AS late").
		ColumnExpr("count(*) FILTER (WHERE a.outcome = 'no_show') AS no_show").
		ColumnExpr("count(*) FILTER (WHERE a.outcome = 'benched') AS benched").
		ColumnExpr("count(*) FILTER (WHERE a.outcome = 'backup') AS backup").
		Join("JOIN characters AS c ON c.id = a.character_id").
		Join("JOIN raid_events AS e ON e.id = a.event_id").
		Where("a.guild_id = ?", guildID).
		Where("e.status = 'completed'").
		GroupExpr("a.character_id, c.name").
		OrderExpr("c.name ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("summarize attendance for guild %d: %w", guildID, err)
	}

	summaries := make([]attendancedomain.CharacterSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, attendancedomain.CharacterSummary{
			CharacterID:   row.CharacterID,
			CharacterName: row.CharacterName,
			Attended:      row.Attended,
			Late:          row.Late,
			NoShow:        row.NoShow,
			Benched:       row.Benched,
			Backup:        row.Backup,
		})
	}
	return summaries, nil
}
