package attendancedb

import (
	"context"

	attendancedomain "github.com/hnaspl/woltk-calendar/app/modules/attendance/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Repository defines persistence for attendance records.
//
// Error contract:
//   - Upsert replaces an existing outcome for the same event/character
//     instead of failing.
//   - Summarize scans the guild's full history; completed events only.
type Repository interface {
	// Upsert stores an outcome, replacing any previous one for the same
	// event and character.
	Upsert(ctx context.Context, record *attendancedomain.Record) error

	// ListByEvent returns every recorded outcome for an event.
	ListByEvent(ctx context.Context, eventID sharedtypes.EventID) ([]attendancedomain.Record, error)

	// Summarize aggregates per-character outcome counts across the
	// guild's completed events, joined with character names.
	Summarize(ctx context.Context, guildID sharedtypes.GuildID) ([]attendancedomain.CharacterSummary, error)
}
