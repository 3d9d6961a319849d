package attendanceservice

import (
	"context"
	"errors"

	attendancedomain "github.com/hnaspl/woltk-calendar/app/modules/attendance/domain"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// RecordOutcome stores one character's outcome for a locked or completed
// event. Re-recording replaces the previous outcome.
func (s *AttendanceService) RecordOutcome(ctx context.Context, record attendancedomain.Record) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "RecordOutcome", record.EventID, func(ctx context.Context) (results.OperationResult, error) {
		if !record.Outcome.Valid() {
			return results.FailureResult(ErrInvalidOutcome), nil
		}

		event, err := s.raids.GetEvent(ctx, record.EventID)
		if err != nil {
			if errors.Is(err, raiddb.ErrNotFound) {
				return results.FailureResult(ErrEventNotFound), nil
			}
			return results.OperationResult{}, err
		}
		if event.Status == raiddomain.StatusScheduled || event.Status == raiddomain.StatusCancelled {
			return results.FailureResult(ErrEventNotFinished), nil
		}

		record.GuildID = event.GuildID
		if err := s.repo.Upsert(ctx, &record); err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&record), nil
	})
}

// GetEventAttendance lists every recorded outcome for an event.
func (s *AttendanceService) GetEventAttendance(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetEventAttendance", eventID, func(ctx context.Context) (results.OperationResult, error) {
		records, err := s.repo.ListByEvent(ctx, eventID)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(records), nil
	})
}

// GetGuildSummary aggregates per-character attendance across completed
// events.
func (s *AttendanceService) GetGuildSummary(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetGuildSummary", 0, func(ctx context.Context) (results.OperationResult, error) {
		summaries, err := s.repo.Summarize(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(summaries), nil
	})
}
