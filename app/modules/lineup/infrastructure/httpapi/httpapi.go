// Package lineuphttp exposes the lineup REST surface. It fronts the same
// application service the messaging handlers use; applied mutations are
// also published to the bus so room clients stay in sync.
package lineuphttp

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	lineupservice "github.com/hnaspl/woltk-calendar/app/modules/lineup/application"
	lineupdomain "github.com/hnaspl/woltk-calendar/app/modules/lineup/domain"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// API serves the lineup endpoints.
type API struct {
	service lineupservice.Service
	guilds  guildservice.Service
	bus     httpapi.Publisher
	logger  *slog.Logger
}

func NewAPI(service lineupservice.Service, guilds guildservice.Service, bus httpapi.Publisher, logger *slog.Logger) *API {
	return &API{service: service, guilds: guilds, bus: bus, logger: logger}
}

// Register mounts the lineup routes under an event subtree. The caller
// is expected to have threaded AuthMiddleware above this.
func (a *API) Register(r chi.Router) {
	r.Route("/events/{eventID}/lineup", func(r chi.Router) {
		r.Get("/", a.handleGet)
		r.Put("/", a.handleReplace)
		r.Post("/assignments", a.handleAssign)
		r.Delete("/assignments/{signupID}", a.handleUnassign)
		r.Put("/bench", a.handleBenchReorder)
		r.Post("/confirm", a.handleConfirm)
	})
}

func eventIDParam(r *http.Request) (sharedtypes.EventID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return sharedtypes.EventID(id), true
}

// authorize resolves the caller and checks the manage_lineup capability.
// It writes the response itself on failure.
func (a *API) authorize(w http.ResponseWriter, r *http.Request) (httpapi.Caller, bool) {
	caller, ok := httpapi.CallerFrom(r.Context())
	if !ok {
		httpapi.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return httpapi.Caller{}, false
	}

	result, err := a.guilds.Authorize(r.Context(), caller.GuildID, caller.UserID, sharedtypes.CapManageLineup)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "authorization check failed")
		return httpapi.Caller{}, false
	}
	if result.Failure != nil {
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", "missing manage_lineup capability")
		return httpapi.Caller{}, false
	}
	return caller, true
}

// writeFailure maps a domain failure onto the HTTP error taxonomy.
func writeFailure(w http.ResponseWriter, failure error) {
	var violation *raiddomain.LifecycleViolationError
	var occupied *lineupdomain.SlotOccupiedError
	var order *lineupdomain.InvalidOrderError
	var slot *lineupdomain.InvalidSlotError
	switch {
	case errors.Is(failure, lineupservice.ErrConflictRejected):
		httpapi.WriteError(w, http.StatusConflict, "conflict", failure.Error())
	case errors.As(failure, &violation):
		httpapi.WriteError(w, http.StatusConflict, "event_frozen", failure.Error())
	case errors.Is(failure, lineupservice.ErrEventNotFound),
		errors.Is(failure, lineupdomain.ErrSignupNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "not_found", failure.Error())
	case errors.As(failure, &occupied), errors.As(failure, &order), errors.As(failure, &slot):
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "invalid", failure.Error())
	default:
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "invalid", failure.Error())
	}
}
