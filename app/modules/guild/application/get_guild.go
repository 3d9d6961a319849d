package guildservice

import (
	"context"
	"errors"

	guilddb "github.com/hnaspl/woltk-calendar/app/modules/guild/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// GetGuild retrieves a guild by ID.
func (s *GuildService) GetGuild(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetGuild", guildID, func(ctx context.Context) (results.OperationResult, error) {
		guild, err := s.repo.GetGuild(ctx, guildID)
		if err != nil {
			if errors.Is(err, guilddb.ErrNotFound) {
				return results.FailureResult(ErrGuildNotFound), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(guild), nil
	})
}
