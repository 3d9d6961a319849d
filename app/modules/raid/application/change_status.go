package raidservice

import (
	"context"
	"errors"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// ChangeStatus applies a lifecycle transition with a compare-and-set on the
// current status so concurrent transitions cannot clobber each other.
func (s *RaidService) ChangeStatus(ctx context.Context, eventID sharedtypes.EventID, to raiddomain.EventStatus) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ChangeStatus", eventID, func(ctx context.Context) (results.OperationResult, error) {
		event, err := s.repo.GetEvent(ctx, eventID)
		if err != nil {
			if errors.Is(err, raiddb.ErrNotFound) {
				return results.FailureResult(ErrRaidNotFound), nil
			}
			return results.OperationResult{}, err
		}

		if _, err := event.Transition(to); err != nil {
			return results.FailureResult(err), nil
		}

		if err := s.repo.UpdateStatus(ctx, eventID, event.Status, to); err != nil {
			if errors.Is(err, raiddb.ErrStaleStatus) {
				return results.FailureResult(ErrStatusConflict), nil
			}
			return results.OperationResult{}, err
		}

		return results.SuccessResult(&raidevents.RaidStatusChangedPayloadV1{
			EventID: eventID,
			GuildID: event.GuildID,
			From:    event.Status,
			To:      to,
		}), nil
	})
}
