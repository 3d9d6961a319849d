// Package signuphttp exposes the signup REST surface: event signups,
// withdrawal, and the ban list. Applied mutations are also published to
// the bus so the lineup module rebuilds and rooms refresh.
package signuphttp

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	raiddomain "github.com/hnaspl/woltk-calendar/app/modules/raid/domain"
	signupservice "github.com/hnaspl/woltk-calendar/app/modules/signup/application"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// API serves the signup endpoints.
type API struct {
	service signupservice.Service
	guilds  guildservice.Service
	bus     httpapi.Publisher
	logger  *slog.Logger
}

func NewAPI(service signupservice.Service, guilds guildservice.Service, bus httpapi.Publisher, logger *slog.Logger) *API {
	return &API{service: service, guilds: guilds, bus: bus, logger: logger}
}

// Register mounts the signup routes. AuthMiddleware is threaded above.
func (a *API) Register(r chi.Router) {
	r.Route("/events/{eventID}/signups", func(r chi.Router) {
		r.Get("/", a.handleList)
		r.Post("/", a.handleCreate)
		r.Get("/banned", a.handleListBanned)
	})
	r.Route("/signups/{signupID}", func(r chi.Router) {
		r.Put("/", a.handleUpdate)
		r.Delete("/", a.handleWithdraw)
		r.Put("/ban", a.handleBan)
		r.Delete("/ban", a.handleUnban)
	})
}

func eventIDParam(r *http.Request) (sharedtypes.EventID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return sharedtypes.EventID(id), true
}

func signupIDParam(r *http.Request) (sharedtypes.SignupID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "signupID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return sharedtypes.SignupID(id), true
}

func (a *API) caller(w http.ResponseWriter, r *http.Request) (httpapi.Caller, bool) {
	caller, ok := httpapi.CallerFrom(r.Context())
	if !ok {
		httpapi.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return httpapi.Caller{}, false
	}
	return caller, true
}

// can checks one capability through the guild service.
func (a *API) can(r *http.Request, caller httpapi.Caller, capability sharedtypes.Capability) (bool, error) {
	result, err := a.guilds.Authorize(r.Context(), caller.GuildID, caller.UserID, capability)
	if err != nil {
		return false, err
	}
	return result.Failure == nil, nil
}

// writeFailure maps a domain failure onto the HTTP error taxonomy.
func writeFailure(w http.ResponseWriter, failure error) {
	var violation *raiddomain.LifecycleViolationError
	switch {
	case errors.Is(failure, signupservice.ErrSignupNotFound),
		errors.Is(failure, signupservice.ErrEventNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "not_found", failure.Error())
	case errors.Is(failure, signupservice.ErrDuplicateSignup):
		httpapi.WriteError(w, http.StatusConflict, "conflict", failure.Error())
	case errors.As(failure, &violation):
		httpapi.WriteError(w, http.StatusConflict, "event_frozen", failure.Error())
	case errors.Is(failure, signupservice.ErrInvalidRole):
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "invalid", failure.Error())
	default:
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "invalid", failure.Error())
	}
}
