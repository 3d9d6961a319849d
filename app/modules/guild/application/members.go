package guildservice

import (
	"context"

	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// ListMembers returns all memberships for a guild.
func (s *GuildService) ListMembers(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ListMembers", guildID, func(ctx context.Context) (results.OperationResult, error) {
		members, err := s.repo.ListMembers(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(members), nil
	})
}
