package raidservice

import (
	"context"
	"errors"
	"fmt"

	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
)

// UpdateRaid persists detail changes on a mutable event. Status changes go
// through ChangeStatus.
func (s *RaidService) UpdateRaid(ctx context.Context, event raiddomain.RaidEvent) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "UpdateRaid", event.ID, func(ctx context.Context) (results.OperationResult, error) {
		current, err := s.repo.GetEvent(ctx, event.ID)
		if err != nil {
			if errors.Is(err, raiddb.ErrNotFound) {
				return results.FailureResult(ErrRaidNotFound), nil
			}
			return results.OperationResult{}, err
		}
		if err := current.CheckMutable(); err != nil {
			return results.FailureResult(err), nil
		}
		if !raiddomain.ValidSize(event.Size) {
			return results.FailureResult(fmt.Errorf("invalid raid size %d", event.Size)), nil
		}

		if err := s.repo.UpdateEvent(ctx, &event); err != nil {
			if errors.Is(err, raiddb.ErrNotFound) {
				return results.FailureResult(ErrRaidNotFound), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&event), nil
	})
}
