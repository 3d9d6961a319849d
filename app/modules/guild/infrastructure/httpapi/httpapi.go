// Package guildhttp exposes the guild roster REST surface: guild info,
// member listings, and character registration.
package guildhttp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
)

// API serves the guild endpoints. All routes operate on the caller's own
// guild; there is no cross-guild surface.
type API struct {
	service guildservice.Service
	logger  *slog.Logger
}

func NewAPI(service guildservice.Service, logger *slog.Logger) *API {
	return &API{service: service, logger: logger}
}

// Register mounts the guild routes. AuthMiddleware is threaded above.
func (a *API) Register(r chi.Router) {
	r.Route("/guild", func(r chi.Router) {
		r.Get("/", a.handleGet)
		r.Get("/members", a.handleListMembers)
		r.Get("/characters", a.handleListCharacters)
		r.Post("/characters", a.handleCreateCharacter)
	})
}

func caller(w http.ResponseWriter, r *http.Request) (httpapi.Caller, bool) {
	c, ok := httpapi.CallerFrom(r.Context())
	if !ok {
		httpapi.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return httpapi.Caller{}, false
	}
	return c, true
}

// writeFailure maps a domain failure onto the HTTP error taxonomy.
func writeFailure(w http.ResponseWriter, failure error) {
	switch {
	case errors.Is(failure, guildservice.ErrGuildNotFound),
		errors.Is(failure, guildservice.ErrUserNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "not_found", failure.Error())
	case errors.Is(failure, guildservice.ErrPermissionDenied):
		httpapi.WriteError(w, http.StatusForbidden, "forbidden", failure.Error())
	default:
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "invalid", failure.Error())
	}
}
