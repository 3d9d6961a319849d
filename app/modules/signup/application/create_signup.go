package signupservice

import (
	"context"
	"errors"

	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	signupdomain "github.com/hnaspl/woltk-calendar/app/modules/signup/domain"
	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	signupdb "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
)

// CreateSignup registers a character for an event. The new signup lands on
// the bench tail the next time the lineup is rebuilt.
func (s *SignupService) CreateSignup(ctx context.Context, request signupevents.SignupCreateRequestedPayloadV1) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "CreateSignup", 0, func(ctx context.Context) (results.OperationResult, error) {
		role := lineupdomain.Role(request.Role)
		if !role.Valid() {
			return results.FailureResult(ErrInvalidRole), nil
		}

		event, err := s.raids.GetEvent(ctx, request.EventID)
		if err != nil {
			if errors.Is(err, raiddb.ErrNotFound) {
				return results.FailureResult(ErrEventNotFound), nil
			}
			return results.OperationResult{}, err
		}
		if err := event.CheckMutable(); err != nil {
			return results.FailureResult(err), nil
		}

		signup := &signupdomain.Signup{
			EventID:     request.EventID,
			GuildID:     event.GuildID,
			UserID:      request.UserID,
			CharacterID: request.CharacterID,
			Role:        role,
			Note:        request.Note,
		}
		if err := s.repo.CreateSignup(ctx, signup); err != nil {
			if errors.Is(err, signupdb.ErrDuplicate) {
				return results.FailureResult(ErrDuplicateSignup), nil
			}
			return results.OperationResult{}, err
		}

		return results.SuccessResult(&signupevents.SignupCreatedPayloadV1{
			Signup:  *signup,
			GuildID: event.GuildID,
		}), nil
	})
}
