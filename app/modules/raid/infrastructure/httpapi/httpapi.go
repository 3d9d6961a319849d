// Package raidhttp exposes the raid event REST surface: creation,
// retrieval, updates, and lifecycle transitions.
package raidhttp

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	raidservice "github.com/hnaspl/woltk-calendar/app/modules/raid/application"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// API serves the raid event endpoints.
type API struct {
	service raidservice.Service
	guilds  guildservice.Service
	bus     httpapi.Publisher
	logger  *slog.Logger
}

func NewAPI(service raidservice.Service, guilds guildservice.Service, bus httpapi.Publisher, logger *slog.Logger) *API {
	return &API{service: service, guilds: guilds, bus: bus, logger: logger}
}

// Register mounts the raid routes. AuthMiddleware is threaded above.
func (a *API) Register(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", a.handleListUpcoming)
		r.Post("/", a.handleCreate)
		r.Get("/{eventID}", a.handleGet)
		r.Put("/{eventID}", a.handleUpdate)
		r.Put("/{eventID}/status", a.handleChangeStatus)
	})
}

func eventIDParam(r *http.Request) (sharedtypes.EventID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return sharedtypes.EventID(id), true
}

// authorize resolves the caller and checks the manage_events capability.
// It writes the response itself on failure.
func (a *API) authorize(w http.ResponseWriter, r *http.Request) (httpapi.Caller, bool) {
	caller, ok := httpapi.CallerFrom(r.Context())
	if !ok {
		httpapi.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return httpapi.Caller{}, false
	}

	result, err := a.guilds.Authorize(r.Context(), caller.GuildID, caller.UserID, sharedtypes.CapManageEvents)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "authorization check failed")
		return httpapi.Caller{}, false
	}
	if result.Failure != nil {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "missing manage_events capability")
		return httpapi.Caller{}, false
	}
	return caller, true
}

// writeFailure maps a domain failure onto the HTTP error taxonomy.
func writeFailure(w http.ResponseWriter, failure error) {
	var violation *raiddomain.LifecycleViolationError
	switch {
	case errors.Is(failure, raidservice.ErrRaidNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "not_found", failure.Error())
	case errors.Is(failure, raidservice.ErrStatusConflict):
		httpapi.WriteError(w, http.StatusConflict, "conflict", failure.Error())
	case errors.As(failure, &violation):
		httpapi.WriteError(w, http.StatusConflict, "event_frozen", failure.Error())
	default:
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "invalid", failure.Error())
	}
}
