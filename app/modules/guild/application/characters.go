package guildservice

import (
	"context"
	"fmt"

	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// ListCharacters returns a user's characters in a guild.
func (s *GuildService) ListCharacters(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ListCharacters", guildID, func(ctx context.Context) (results.OperationResult, error) {
		characters, err := s.repo.ListCharacters(ctx, guildID, userID)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(characters), nil
	})
}

// CreateCharacter registers a new character for a guild member.
func (s *GuildService) CreateCharacter(ctx context.Context, character *guilddomain.Character) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "CreateCharacter", character.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		if character.Name == "" {
			return results.FailureResult(fmt.Errorf("character name is required")), nil
		}
		if !character.Class.Valid() {
			return results.FailureResult(fmt.Errorf("unknown class %q", character.Class)), nil
		}
		if err := s.repo.CreateCharacter(ctx, character); err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(character), nil
	})
}
