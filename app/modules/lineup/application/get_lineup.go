package lineupservice

import (
	"context"
	"errors"

	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// GetLineup returns the current snapshot with its version fingerprint.
func (s *LineupService) GetLineup(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetLineup", eventID, func(ctx context.Context) (results.OperationResult, error) {
		state, err := s.load(ctx, eventID)
		if err != nil {
			if errors.Is(err, raiddb.ErrNotFound) {
				return results.FailureResult(ErrEventNotFound), nil
			}
			return results.OperationResult{}, err
		}
		snap := state.model.Snapshot()
		snap.Version = state.model.Fingerprint()
		return results.SuccessResult(&snap), nil
	})
}
