package attendancehttp

import (
	"net/http"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	attendancedomain "github.com/hnaspl/woltk-calendar/app/modules/attendance/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

type recordOutcomeRequest struct {
	CharacterID sharedtypes.CharacterID  `json:"character_id"`
	Outcome     attendancedomain.Outcome `json:"outcome"`
	Note        string                   `json:"note"`
}

func (a *API) handleRecord(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.authorize(w, r, sharedtypes.CapRecordAttendance)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}

	var req recordOutcomeRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}

	result, err := a.service.RecordOutcome(r.Context(), attendancedomain.Record{
		EventID:     eventID,
		CharacterID: req.CharacterID,
		Outcome:     req.Outcome,
		Note:        req.Note,
		RecordedBy:  caller.UserID,
	})
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to record outcome")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

func (a *API) handleListEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.authorize(w, r, sharedtypes.CapViewAttendance); !ok {
		return
	}
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}

	result, err := a.service.GetEventAttendance(r.Context(), eventID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to load attendance")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.authorize(w, r, sharedtypes.CapViewAttendance)
	if !ok {
		return
	}

	result, err := a.service.GetGuildSummary(r.Context(), caller.GuildID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to load summary")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

func (a *API) handleChart(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.authorize(w, r, sharedtypes.CapViewAttendance)
	if !ok {
		return
	}

	result, err := a.service.RenderRateChart(r.Context(), caller.GuildID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to render chart")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Success.([]byte)); err != nil {
		a.logger.ErrorContext(r.Context(), "failed to write chart response", "error", err)
	}
}

func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.authorize(w, r, sharedtypes.CapViewAttendance)
	if !ok {
		return
	}

	result, err := a.service.ExportSummary(r.Context(), caller.GuildID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to export summary")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Success.([]byte)); err != nil {
		a.logger.ErrorContext(r.Context(), "failed to write export response", "error", err)
	}
}
