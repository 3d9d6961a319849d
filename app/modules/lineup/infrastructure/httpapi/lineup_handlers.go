package lineuphttp

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	"github.com/hnaspl/woltk-calendar/app/shared/attr"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}

	result, err := a.service.GetLineup(r.Context(), eventID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to load lineup")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

type assignRequest struct {
	SignupID sharedtypes.SignupID `json:"signup_id"`
	Slot     string               `json:"slot"`
	Swap     bool                 `json:"swap,omitempty"`
}

func (a *API) handleAssign(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	if _, ok := a.authorize(w, r); !ok {
		return
	}
	var req assignRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}

	result, err := a.service.Assign(r.Context(), eventID, req.SignupID, req.Slot, req.Swap)
	a.respondMutation(w, r, result, err)
}

func (a *API) handleUnassign(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	signupID, err := strconv.ParseInt(chi.URLParam(r, "signupID"), 10, 64)
	if err != nil || signupID <= 0 {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid signup id")
		return
	}
	if _, ok := a.authorize(w, r); !ok {
		return
	}

	result, svcErr := a.service.Unassign(r.Context(), eventID, sharedtypes.SignupID(signupID))
	a.respondMutation(w, r, result, svcErr)
}

type benchReorderRequest struct {
	Order []sharedtypes.SignupID `json:"order"`
}

func (a *API) handleBenchReorder(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	if _, ok := a.authorize(w, r); !ok {
		return
	}
	var req benchReorderRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}

	result, err := a.service.ReorderBench(r.Context(), eventID, req.Order)
	a.respondMutation(w, r, result, err)
}

func (a *API) handleReplace(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	if _, ok := a.authorize(w, r); !ok {
		return
	}
	var req lineupdomain.Grouped
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}

	result, err := a.service.Replace(r.Context(), eventID, req)
	a.respondMutation(w, r, result, err)
}

func (a *API) handleConfirm(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	caller, ok := a.authorize(w, r)
	if !ok {
		return
	}

	result, err := a.service.Confirm(r.Context(), eventID, caller.UserID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "confirm failed")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	if err := httpapi.PublishJSON(r.Context(), a.bus, lineupevents.LineupConfirmedV1, result.Success); err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to publish lineup confirmation", attr.Error(err))
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

// respondMutation writes the mutation outcome and, on success, feeds the
// change back through the bus so room clients see it.
func (a *API) respondMutation(w http.ResponseWriter, r *http.Request, result results.OperationResult, err error) {
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "lineup mutation failed")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	if err := httpapi.PublishJSON(r.Context(), a.bus, lineupevents.LineupChangedV1, result.Success); err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to publish lineup change", attr.Error(err))
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}
