package signupservice

import (
	"context"
	"errors"

	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	signupdb "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// SetBanned flips a signup's ban flag. Banning force-unassigns the signup
// on the next lineup rebuild; unbanning returns it to the bench tail. Ban
// state can be changed on locked events too, so a no-show can still be
// pulled after the roster freezes.
func (s *SignupService) SetBanned(ctx context.Context, signupID sharedtypes.SignupID, banned bool) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "SetBanned", signupID, func(ctx context.Context) (results.OperationResult, error) {
		stored, err := s.repo.GetSignup(ctx, signupID)
		if err != nil {
			if errors.Is(err, signupdb.ErrNotFound) {
				return results.FailureResult(ErrSignupNotFound), nil
			}
			return results.OperationResult{}, err
		}

		if stored.Banned != banned {
			if err := s.repo.SetBanned(ctx, signupID, banned); err != nil {
				return results.OperationResult{}, err
			}
			stored.Banned = banned
		}

		return results.SuccessResult(&signupevents.SignupBanStatePayloadV1{
			Signup:  *stored,
			GuildID: stored.GuildID,
		}), nil
	})
}

// ListSignups returns every signup for an event in creation order.
func (s *SignupService) ListSignups(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ListSignups", 0, func(ctx context.Context) (results.OperationResult, error) {
		signups, err := s.repo.ListByEvent(ctx, eventID)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(signups), nil
	})
}

// ListBanned returns the banned signups for an event.
func (s *SignupService) ListBanned(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ListBanned", 0, func(ctx context.Context) (results.OperationResult, error) {
		signups, err := s.repo.ListBanned(ctx, eventID)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.SuccessResult(signups), nil
	})
}
