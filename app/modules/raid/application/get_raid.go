package raidservice

import (
	"context"
	"errors"

	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// GetRaid retrieves an event by ID.
func (s *RaidService) GetRaid(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetRaid", eventID, func(ctx context.Context) (results.OperationResult, error) {
		event, err := s.repo.GetEvent(ctx, eventID)
		if err != nil {
			if errors.Is(err, raiddb.ErrNotFound) {
				return results.FailureResult(ErrRaidNotFound), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(event), nil
	})
}

// ListUpcoming returns a guild's upcoming events, soonest first.
func (s *RaidService) ListUpcoming(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ListUpcoming", 0, func(ctx context.Context) (results.OperationResult, error) {
		events, err := s.repo.ListUpcoming(ctx, guildID, s.clock.NowUTC())
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(events), nil
	})
}
