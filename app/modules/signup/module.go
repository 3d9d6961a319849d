// Package signup assembles the signup module: character signups, bans,
// the messaging handlers, and the signup REST surface.
package signup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	"github.com/hnaspl/woltk-calendar/app/eventbus"
	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	signupservice "github.com/hnaspl/woltk-calendar/app/modules/signup/application"
	signuphandlers "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/handlers"
	signuphttp "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/httpapi"
	signupdb "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/repositories"
	signuprouter "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/router"
	"github.com/hnaspl/woltk-calendar/app/shared/metrics"
)

// Module bundles the signup service, its messaging router, and its HTTP
// surface.
type Module struct {
	Service signupservice.Service
	Repo    signupdb.Repository
	Router  *signuprouter.SignupRouter
	API     *signuphttp.API
}

// NewSignupModule wires the signup module and registers its message
// handlers. Signup validation reads raid events through the raid
// repository, so the raid module must share its repo here.
func NewSignupModule(
	ctx context.Context,
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
	guilds guildservice.Service,
	raids raiddb.Repository,
	logger *slog.Logger,
	serviceMetrics metrics.ServiceMetrics,
	tracer trace.Tracer,
) (*Module, error) {
	repo := &signupdb.SignupDBImpl{DB: db}
	service := signupservice.NewSignupService(repo, raids, logger, serviceMetrics, tracer)

	handlers := signuphandlers.NewSignupHandlers(service, guilds, logger, tracer)
	signupRouter := signuprouter.NewSignupRouter(logger, router, bus, bus, tracer)
	if err := signupRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure signup router: %w", err)
	}

	return &Module{
		Service: service,
		Repo:    repo,
		Router:  signupRouter,
		API:     signuphttp.NewAPI(service, guilds, bus, logger),
	}, nil
}
