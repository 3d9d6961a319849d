package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	"github.com/hnaspl/woltk-calendar/config"
	"github.com/hnaspl/woltk-calendar/pkg/jwt"
)

// newHTTPServer assembles the REST surface: CORS and rate limiting on
// everything, bearer-token auth on the API routes, and each module's
// routes mounted under /api.
func newHTTPServer(cfg *config.Config, tokens jwt.Service, a *App) *http.Server {
	r := chi.NewRouter()

	r.Use(httpapi.CORSMiddleware(cfg.HTTP.AllowedOrigins))

	limiter := httpapi.NewIPRateLimiter(
		rate.Limit(cfg.HTTP.RateLimitRPS),
		cfg.HTTP.RateLimitBurst,
	)
	r.Use(httpapi.RateLimitMiddleware(limiter))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(httpapi.AuthMiddleware(tokens))

		a.Guild.API.Register(r)
		a.Raid.API.Register(r)
		a.Signup.API.Register(r)
		a.Lineup.API.Register(r)
		a.Attendance.API.Register(r)
	})

	return &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
