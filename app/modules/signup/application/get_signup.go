package signupservice

import (
	"context"
	"errors"

	signupdb "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// GetSignup returns a single signup. Success carries *signupdomain.Signup.
func (s *SignupService) GetSignup(ctx context.Context, signupID sharedtypes.SignupID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetSignup", signupID, func(ctx context.Context) (results.OperationResult, error) {
		stored, err := s.repo.GetSignup(ctx, signupID)
		if err != nil {
			if errors.Is(err, signupdb.ErrNotFound) {
				return results.FailureResult(ErrSignupNotFound), nil
			}
			return results.OperationResult{}, err
		}
		return results.SuccessResult(stored), nil
	})
}
