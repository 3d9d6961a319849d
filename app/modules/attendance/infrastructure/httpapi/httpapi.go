// Package attendancehttp exposes the attendance REST surface: recording
// outcomes, per-event listings, and guild summary views including the
// rate chart and xlsx export.
package attendancehttp

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	attendanceservice "github.com/hnaspl/woltk-calendar/app/modules/attendance/application"
	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// API serves the attendance endpoints.
type API struct {
	service attendanceservice.Service
	guilds  guildservice.Service
	logger  *slog.Logger
}

func NewAPI(service attendanceservice.Service, guilds guildservice.Service, logger *slog.Logger) *API {
	return &API{service: service, guilds: guilds, logger: logger}
}

// Register mounts the attendance routes. AuthMiddleware is threaded
// above.
func (a *API) Register(r chi.Router) {
	r.Route("/events/{eventID}/attendance", func(r chi.Router) {
		r.Get("/", a.handleListEvent)
		r.Put("/", a.handleRecord)
	})
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/summary", a.handleSummary)
		r.Get("/summary/chart.png", a.handleChart)
		r.Get("/summary/export.xlsx", a.handleExport)
	})
}

func eventIDParam(r *http.Request) (sharedtypes.EventID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return sharedtypes.EventID(id), true
}

// authorize resolves the caller and checks the given capability. It
// writes the response itself on failure.
func (a *API) authorize(w http.ResponseWriter, r *http.Request, capability sharedtypes.Capability) (httpapi.Caller, bool) {
	caller, ok := httpapi.CallerFrom(r.Context())
	if !ok {
		httpapi.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return httpapi.Caller{}, false
	}

	result, err := a.guilds.Authorize(r.Context(), caller.GuildID, caller.UserID, capability)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "authorization check failed")
		return httpapi.Caller{}, false
	}
	if result.Failure != nil {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "missing "+string(capability)+" capability")
		return httpapi.Caller{}, false
	}
	return caller, true
}

// writeFailure maps a domain failure onto the HTTP error taxonomy.
func writeFailure(w http.ResponseWriter, failure error) {
	switch {
	case errors.Is(failure, attendanceservice.ErrEventNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "not_found", failure.Error())
	case errors.Is(failure, attendanceservice.ErrEventNotFinished):
		httpapi.WriteError(w, http.StatusConflict, "event_frozen", failure.Error())
	default:
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "invalid", failure.Error())
	}
}
