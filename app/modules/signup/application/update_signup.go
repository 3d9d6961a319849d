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
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// UpdateSignup changes a signup's queued role or note.
func (s *SignupService) UpdateSignup(ctx context.Context, request signupevents.SignupUpdateRequestedPayloadV1) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "UpdateSignup", request.SignupID, func(ctx context.Context) (results.OperationResult, error) {
		role := lineupdomain.Role(request.Role)
		if !role.Valid() {
			return results.FailureResult(ErrInvalidRole), nil
		}

		signup, failure, err := s.loadGated(ctx, request.SignupID)
		if signup == nil {
			return failure, err
		}

		if err := s.repo.UpdateSignup(ctx, request.SignupID, role, request.Note); err != nil {
			if errors.Is(err, signupdb.ErrNotFound) {
				return results.FailureResult(ErrSignupNotFound), nil
			}
			return results.OperationResult{}, err
		}

		updated := *signup
		updated.Role = role
		updated.Note = request.Note
		return results.SuccessResult(&signupevents.SignupUpdatedPayloadV1{
			Signup:  updated,
			GuildID: updated.GuildID,
		}), nil
	})
}

// WithdrawSignup deletes a signup. The lineup drops the seat or bench
// position on its next rebuild.
func (s *SignupService) WithdrawSignup(ctx context.Context, signupID sharedtypes.SignupID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "WithdrawSignup", signupID, func(ctx context.Context) (results.OperationResult, error) {
		signup, failure, err := s.loadGated(ctx, signupID)
		if signup == nil {
			return failure, err
		}

		if err := s.repo.DeleteSignup(ctx, signupID); err != nil {
			if errors.Is(err, signupdb.ErrNotFound) {
				return results.FailureResult(ErrSignupNotFound), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(&signupevents.SignupWithdrawnPayloadV1{
			SignupID: signupID,
			EventID:  signup.EventID,
			GuildID:  signup.GuildID,
		}), nil
	})
}

// loadGated fetches the signup and checks its event is still mutable. A nil
// signup means the caller should return the accompanying result and error.
func (s *SignupService) loadGated(ctx context.Context, signupID sharedtypes.SignupID) (*signupdomain.Signup, results.OperationResult, error) {
	stored, err := s.repo.GetSignup(ctx, signupID)
	if err != nil {
		if errors.Is(err, signupdb.ErrNotFound) {
			return nil, results.FailureResult(ErrSignupNotFound), nil
		}
		return nil, results.OperationResult{}, err
	}

	event, err := s.raids.GetEvent(ctx, stored.EventID)
	if err != nil {
		if errors.Is(err, raiddb.ErrNotFound) {
			return nil, results.FailureResult(ErrEventNotFound), nil
		}
		return nil, results.OperationResult{}, err
	}
	if err := event.CheckMutable(); err != nil {
		return nil, results.FailureResult(err), nil
	}
	return stored, results.OperationResult{}, nil
}
