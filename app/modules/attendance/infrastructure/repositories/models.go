package attendancedb

import (
	"time"

	"github.com/uptrace/bun"

	attendancedomain "github.com/hnaspl/woltk-calendar/app/modules/attendance/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Attendance is the attendance table model. The (event_id, character_id)
// unique index makes recording idempotent: re-recording replaces the
// outcome.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance,alias:a"`

	ID          int64                    `bun:"id,pk,autoincrement"`
	EventID     sharedtypes.EventID      `bun:"event_id,notnull,unique:uq_attendance_event_character"`
	GuildID     sharedtypes.GuildID      `bun:"guild_id,notnull"`
	CharacterID sharedtypes.CharacterID  `bun:"character_id,notnull,unique:uq_attendance_event_character"`
	Outcome     attendancedomain.Outcome `bun:"outcome,notnull,type:varchar(20)"`
	Note        string                   `bun:"note,nullzero,type:varchar(255)"`
	RecordedBy  sharedtypes.UserID       `bun:"recorded_by,notnull"`
	RecordedAt  time.Time                `bun:"recorded_at,nullzero,notnull,default:current_timestamp"`
}

func (a *Attendance) toDomain() *attendancedomain.Record {
	if a == nil {
		return nil
	}
	return &attendancedomain.Record{
		ID:          a.ID,
		EventID:     a.EventID,
		GuildID:     a.GuildID,
		CharacterID: a.CharacterID,
		Outcome:     a.Outcome,
		Note:        a.Note,
		RecordedBy:  a.RecordedBy,
		RecordedAt:  a.RecordedAt,
	}
}

// summaryRow is the scan target for the aggregation query.
type summaryRow struct {
	CharacterID   sharedtypes.CharacterID `bun:"character_id"`
	CharacterName string                  `bun:"character_name"`
	Attended      int                     `bun:"attended"`
	Late          int                     `bun:"late"`
	NoShow        int                     `bun:"no_show"`
	Benched       int                     `bun:"benched"`
	Backup        int                     `bun:"backup"`
}
