package attendanceservice

import (
	"context"

	attendancedomain "github.com/hnaspl/woltk-calendar/app/modules/attendance/domain"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Service defines attendance operations. Outcomes are recorded once the
// roster freezes; summaries cover completed events only.
type Service interface {
	// RecordOutcome stores or replaces one character's outcome for an
	// event. Success carries the *attendancedomain.Record.
	RecordOutcome(ctx context.Context, record attendancedomain.Record) (results.OperationResult, error)

	// GetEventAttendance lists every recorded outcome for an event.
	GetEventAttendance(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error)

	// GetGuildSummary aggregates per-character attendance across the
	// guild's completed events.
	GetGuildSummary(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error)

	// RenderRateChart draws the guild's attendance rates as a PNG.
	RenderRateChart(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error)

	// ExportSummary writes the guild's attendance summary as an xlsx
	// workbook.
	ExportSummary(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error)
}
