package signuphttp

import (
	"net/http"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	signupdomain "github.com/hnaspl/woltk-calendar/app/modules/signup/domain"
	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	"github.com/hnaspl/woltk-calendar/app/shared/attr"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}

	result, err := a.service.ListSignups(r.Context(), eventID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to list signups")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

type createSignupRequest struct {
	CharacterID sharedtypes.CharacterID `json:"character_id"`
	Role        string                  `json:"role"`
	Note        string                  `json:"note,omitempty"`
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	allowed, err := a.can(r, caller, sharedtypes.CapSignUp)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "authorization check failed")
		return
	}
	if !allowed {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "missing sign_up capability")
		return
	}
	var req createSignupRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}

	result, err := a.service.CreateSignup(r.Context(), signupevents.SignupCreateRequestedPayloadV1{
		EventID:     eventID,
		GuildID:     caller.GuildID,
		UserID:      caller.UserID,
		CharacterID: req.CharacterID,
		Role:        req.Role,
		Note:        req.Note,
	})
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "signup failed")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	if err := httpapi.PublishJSON(r.Context(), a.bus, signupevents.SignupCreated, result.Success); err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to publish signup creation", attr.Error(err))
	}
	httpapi.WriteJSON(w, http.StatusCreated, result.Success)
}

func (a *API) handleListBanned(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	allowed, err := a.can(r, caller, sharedtypes.CapManageMembers)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "authorization check failed")
		return
	}
	if !allowed {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "missing manage_members capability")
		return
	}

	result, err := a.service.ListBanned(r.Context(), eventID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to list banned signups")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

// resolveOwned loads the signup and verifies the caller owns it or can
// manage members. It writes the response itself on failure.
func (a *API) resolveOwned(w http.ResponseWriter, r *http.Request) (*signupdomain.Signup, bool) {
	signupID, ok := signupIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid signup id")
		return nil, false
	}
	caller, ok := a.caller(w, r)
	if !ok {
		return nil, false
	}

	result, err := a.service.GetSignup(r.Context(), signupID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to load signup")
		return nil, false
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return nil, false
	}

	signup := result.Success.(*signupdomain.Signup)
	if signup.UserID != caller.UserID {
		allowed, err := a.can(r, caller, sharedtypes.CapManageMembers)
		if err != nil {
			httpapi.WriteError(w, http.StatusInternalServerError, "internal", "authorization check failed")
			return nil, false
		}
		if !allowed {
			httpapi.WriteError(w, http.StatusForbidden, "forbidden", "not your signup")
			return nil, false
		}
	}
	return signup, true
}

type updateSignupRequest struct {
	Role string `json:"role"`
	Note string `json:"note,omitempty"`
}

func (a *API) handleUpdate(w http.ResponseWriter, r *http.Request) {
	signup, ok := a.resolveOwned(w, r)
	if !ok {
		return
	}
	var req updateSignupRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}

	result, err := a.service.UpdateSignup(r.Context(), signupevents.SignupUpdateRequestedPayloadV1{
		SignupID: signup.ID,
		Role:     req.Role,
		Note:     req.Note,
	})
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "signup update failed")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	if err := httpapi.PublishJSON(r.Context(), a.bus, signupevents.SignupUpdated, result.Success); err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to publish signup update", attr.Error(err))
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

func (a *API) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	signup, ok := a.resolveOwned(w, r)
	if !ok {
		return
	}

	result, err := a.service.WithdrawSignup(r.Context(), signup.ID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "withdraw failed")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	if err := httpapi.PublishJSON(r.Context(), a.bus, signupevents.SignupWithdrawn, result.Success); err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to publish signup withdrawal", attr.Error(err))
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

func (a *API) handleBan(w http.ResponseWriter, r *http.Request) {
	a.setBanned(w, r, true)
}

func (a *API) handleUnban(w http.ResponseWriter, r *http.Request) {
	a.setBanned(w, r, false)
}

func (a *API) setBanned(w http.ResponseWriter, r *http.Request, banned bool) {
	signupID, ok := signupIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid signup id")
		return
	}
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	allowed, err := a.can(r, caller, sharedtypes.CapManageMembers)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "authorization check failed")
		return
	}
	if !allowed {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "missing manage_members capability")
		return
	}

	result, err := a.service.SetBanned(r.Context(), signupID, banned)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "ban update failed")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}

	topic := signupevents.SignupBanned
	if !banned {
		topic = signupevents.SignupUnbanned
	}
	if err := httpapi.PublishJSON(r.Context(), a.bus, topic, result.Success); err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to publish ban state change", attr.Error(err))
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}
