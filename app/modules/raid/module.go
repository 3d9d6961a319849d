// Package raid assembles the raid event module: scheduling, lifecycle
// transitions, the messaging handlers, and the raid REST surface.
package raid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	"github.com/hnaspl/woltk-calendar/app/eventbus"
	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	raidservice "github.com/hnaspl/woltk-calendar/app/modules/raid/application"
	raidhandlers "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/handlers"
	raidhttp "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/httpapi"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	raidrouter "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/router"
	raidtime "github.com/hnaspl/woltk-calendar/app/modules/raid/timeutil"
	"github.com/hnaspl/woltk-calendar/app/shared/metrics"
)

// Module bundles the raid service, its messaging router, and its HTTP
// surface.
type Module struct {
	Service raidservice.Service
	Repo    raiddb.Repository
	Router  *raidrouter.RaidRouter
	API     *raidhttp.API
}

// NewRaidModule wires the raid module and registers its message handlers.
func NewRaidModule(
	ctx context.Context,
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
	guilds guildservice.Service,
	logger *slog.Logger,
	serviceMetrics metrics.ServiceMetrics,
	tracer trace.Tracer,
) (*Module, error) {
	repo := &raiddb.RaidDBImpl{DB: db}
	service := raidservice.NewRaidService(
		repo,
		raidtime.NewTimeParser(),
		raidtime.RealClock{},
		logger,
		serviceMetrics,
		tracer,
	)

	handlers := raidhandlers.NewRaidHandlers(service, guilds, logger, tracer)
	raidRouter := raidrouter.NewRaidRouter(logger, router, bus, bus, tracer)
	if err := raidRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure raid router: %w", err)
	}

	return &Module{
		Service: service,
		Repo:    repo,
		Router:  raidRouter,
		API:     raidhttp.NewAPI(service, guilds, bus, logger),
	}, nil
}
