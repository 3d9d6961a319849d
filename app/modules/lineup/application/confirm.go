package lineupservice

import (
	"context"
	"errors"

	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Confirm marks the current arrangement confirmed. Confirmation is allowed
// on locked events too; only terminal states reject it.
func (s *LineupService) Confirm(ctx context.Context, eventID sharedtypes.EventID, userID sharedtypes.UserID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Confirm", eventID, func(ctx context.Context) (results.OperationResult, error) {
		state, err := s.load(ctx, eventID)
		if err != nil {
			if errors.Is(err, raiddb.ErrNotFound) {
				return results.FailureResult(ErrEventNotFound), nil
			}
			return results.OperationResult{}, err
		}
		if state.event.Status.Terminal() {
			return results.FailureResult(state.event.CheckMutable()), nil
		}

		if err := s.lineups.Confirm(ctx, eventID, userID); err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&lineupevents.ConfirmedPayloadV1{
			EventID:     eventID,
			GuildID:     state.event.GuildID,
			ConfirmedBy: userID,
			Version:     state.baseVersion,
		}), nil
	})
}
