package guildservice

import (
	"context"
	"errors"

	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	guilddb "github.com/hnaspl/woltk-calendar/app/modules/guild/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Authorize evaluates whether a user may exercise a capability in a guild.
func (s *GuildService) Authorize(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, capability sharedtypes.Capability) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Authorize", guildID, func(ctx context.Context) (results.OperationResult, error) {
		user, err := s.repo.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, guilddb.ErrNotFound) {
				return results.FailureResult(ErrUserNotFound), nil
			}
			return results.OperationResult{}, err
		}

		membership, err := s.repo.GetMembership(ctx, guildID, userID)
		if err != nil {
			return results.OperationResult{}, err
		}

		if !guilddomain.Can(capability, *user, membership) {
			return results.FailureResult(ErrPermissionDenied), nil
		}
		return results.SuccessResult(&Actor{User: *user, Membership: membership}), nil
	})
}
