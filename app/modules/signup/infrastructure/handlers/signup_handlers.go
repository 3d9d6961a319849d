package signuphandlers

import (
	"context"

	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// HandleCreateRequested signs a character up. Signing up needs only guild
// membership, evaluated as the sign_up capability.
func (h *SignupHandlers) HandleCreateRequested(ctx context.Context, payload *signupevents.SignupCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	auth, err := h.guilds.Authorize(ctx, payload.GuildID, payload.UserID, sharedtypes.CapSignUp)
	if err != nil {
		return nil, err
	}
	if auth.Failure != nil {
		return []handlerwrapper.Result{{
			Topic: signupevents.SignupCreationFailed,
			Payload: &signupevents.SignupCreationFailedPayloadV1{
				EventID:     payload.EventID,
				CharacterID: payload.CharacterID,
				Reason:      auth.Failure.(error).Error(),
			},
		}}, nil
	}

	result, err := h.service.CreateSignup(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapResult(result, signupevents.SignupCreated, signupevents.SignupCreationFailed, func(reason string) any {
		return &signupevents.SignupCreationFailedPayloadV1{
			EventID:     payload.EventID,
			CharacterID: payload.CharacterID,
			Reason:      reason,
		}
	}), nil
}

// HandleUpdateRequested changes a signup's role or note.
func (h *SignupHandlers) HandleUpdateRequested(ctx context.Context, payload *signupevents.SignupUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	result, err := h.service.UpdateSignup(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapResult(result, signupevents.SignupUpdated, signupevents.SignupUpdateFailed, func(reason string) any {
		return &signupevents.SignupUpdateFailedPayloadV1{SignupID: payload.SignupID, Reason: reason}
	}), nil
}

// HandleWithdrawRequested removes a signup.
func (h *SignupHandlers) HandleWithdrawRequested(ctx context.Context, payload *signupevents.SignupWithdrawRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	result, err := h.service.WithdrawSignup(ctx, payload.SignupID)
	if err != nil {
		return nil, err
	}
	return mapResult(result, signupevents.SignupWithdrawn, signupevents.SignupWithdrawFailed, func(reason string) any {
		return &signupevents.SignupWithdrawFailedPayloadV1{SignupID: payload.SignupID, Reason: reason}
	}), nil
}

// HandleBanRequested sets or clears a ban.
func (h *SignupHandlers) HandleBanRequested(ctx context.Context, payload *signupevents.SignupBanRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	result, err := h.service.SetBanned(ctx, payload.SignupID, payload.Banned)
	if err != nil {
		return nil, err
	}

	successTopic := signupevents.SignupBanned
	if !payload.Banned {
		successTopic = signupevents.SignupUnbanned
	}
	return mapResult(result, successTopic, signupevents.SignupBanFailed, func(reason string) any {
		return &signupevents.SignupBanFailedPayloadV1{SignupID: payload.SignupID, Reason: reason}
	}), nil
}
