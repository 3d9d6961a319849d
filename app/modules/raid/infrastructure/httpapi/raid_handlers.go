package raidhttp

import (
	"net/http"
	"time"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	"github.com/hnaspl/woltk-calendar/app/shared/attr"
)

func (a *API) handleListUpcoming(w http.ResponseWriter, r *http.Request) {
	caller, ok := httpapi.CallerFrom(r.Context())
	if !ok {
		httpapi.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	result, err := a.service.ListUpcoming(r.Context(), caller.GuildID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to list events")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}

	result, err := a.service.GetRaid(r.Context(), eventID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to load event")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

type createRaidRequest struct {
	Title        string                  `json:"title"`
	Instance     raiddomain.RaidInstance `json:"instance"`
	Size         int                     `json:"size"`
	ScheduleText string                  `json:"schedule_text"`
	Timezone     string                  `json:"timezone"`
	Description  string                  `json:"description,omitempty"`
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.authorize(w, r)
	if !ok {
		return
	}
	var req createRaidRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}

	result, err := a.service.CreateRaid(r.Context(), raidevents.RaidCreateRequestedPayloadV1{
		GuildID:      caller.GuildID,
		RequestedBy:  caller.UserID,
		Title:        req.Title,
		Instance:     req.Instance,
		Size:         req.Size,
		ScheduleText: req.ScheduleText,
		Timezone:     req.Timezone,
		Description:  req.Description,
		RequestedAt:  time.Now().UTC(),
	})
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "event creation failed")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}

	event := result.Success.(*raiddomain.RaidEvent)
	if err := httpapi.PublishJSON(r.Context(), a.bus, raidevents.RaidCreatedV1, &raidevents.RaidCreatedPayloadV1{Event: *event}); err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to publish event creation", attr.Error(err))
	}
	httpapi.WriteJSON(w, http.StatusCreated, event)
}

type updateRaidRequest struct {
	Title        string                  `json:"title"`
	Instance     raiddomain.RaidInstance `json:"instance"`
	Size         int                     `json:"size"`
	ScheduledAt  time.Time               `json:"scheduled_at"`
	Description  string                  `json:"description,omitempty"`
}

func (a *API) handleUpdate(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	caller, ok := a.authorize(w, r)
	if !ok {
		return
	}
	var req updateRaidRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}

	result, err := a.service.UpdateRaid(r.Context(), raiddomain.RaidEvent{
		ID:          eventID,
		GuildID:     caller.GuildID,
		Title:       req.Title,
		Instance:    req.Instance,
		Size:        req.Size,
		ScheduledAt: req.ScheduledAt,
		Description: req.Description,
	})
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "event update failed")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	if err := httpapi.PublishJSON(r.Context(), a.bus, raidevents.RaidUpdatedV1, result.Success); err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to publish event update", attr.Error(err))
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

type changeStatusRequest struct {
	Status raiddomain.EventStatus `json:"status"`
}

func (a *API) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(r)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	if _, ok := a.authorize(w, r); !ok {
		return
	}
	var req changeStatusRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}

	result, err := a.service.ChangeStatus(r.Context(), eventID, req.Status)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "status change failed")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	if err := httpapi.PublishJSON(r.Context(), a.bus, raidevents.RaidStatusChangedV1, result.Success); err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to publish status change", attr.Error(err))
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}
