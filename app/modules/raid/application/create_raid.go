package raidservice

import (
	"context"
	"fmt"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	raidtime "github.com/hnaspl/woltk-calendar/app/modules/raid/timeutil"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
)

// CreateRaid validates the request, parses the schedule text and persists
// a new scheduled event.
func (s *RaidService) CreateRaid(ctx context.Context, request raidevents.RaidCreateRequestedPayloadV1) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "CreateRaid", 0, func(ctx context.Context) (results.OperationResult, error) {
		if request.Title == "" {
			return results.FailureResult(fmt.Errorf("title is required")), nil
		}
		if !raiddomain.ValidSize(request.Size) {
			return results.FailureResult(fmt.Errorf("invalid raid size %d", request.Size)), nil
		}

		// Anchor parsing to the request time so queue delays and retries
		// resolve "tomorrow" the same way.
		clock := s.clock
		if !request.RequestedAt.IsZero() {
			clock = raidtime.NewAnchorClock(request.RequestedAt)
		}
		scheduledAt, err := s.parser.ParseScheduleInput(request.ScheduleText, request.Timezone, clock)
		if err != nil {
			return results.FailureResult(fmt.Errorf("schedule: %w", err)), nil
		}

		event := &raiddomain.RaidEvent{
			GuildID:     request.GuildID,
			Title:       request.Title,
			Instance:    request.Instance,
			Size:        request.Size,
			Status:      raiddomain.StatusScheduled,
			ScheduledAt: scheduledAt,
			Description: request.Description,
			CreatedBy:   request.RequestedBy,
		}
		if err := s.repo.CreateEvent(ctx, event); err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(event), nil
	})
}
