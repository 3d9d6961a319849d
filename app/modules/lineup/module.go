// Package lineup assembles the lineup module: roster composition, the
// realtime gateway, the messaging handlers, and the lineup REST surface.
package lineup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	"github.com/hnaspl/woltk-calendar/app/eventbus"
	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	lineupservice "github.com/hnaspl/woltk-calendar/app/modules/lineup/application"
	gateway "github.com/hnaspl/woltk-calendar/app/modules/lineup/infrastructure/gateway"
	lineuphandlers "github.com/hnaspl/woltk-calendar/app/modules/lineup/infrastructure/handlers"
	lineuphttp "github.com/hnaspl/woltk-calendar/app/modules/lineup/infrastructure/httpapi"
	lineupdb "github.com/hnaspl/woltk-calendar/app/modules/lineup/infrastructure/repositories"
	lineuprouter "github.com/hnaspl/woltk-calendar/app/modules/lineup/infrastructure/router"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	signupdb "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/realtime"
	"github.com/hnaspl/woltk-calendar/app/shared/metrics"
)

// Module bundles the lineup service, the realtime gateway, the messaging
// router, and the HTTP surface.
type Module struct {
	Service     lineupservice.Service
	Ingress     *gateway.Ingress
	Broadcaster *gateway.Broadcaster
	Router      *lineuprouter.LineupRouter
	API         *lineuphttp.API
}

// NewLineupModule wires the lineup module, registers its message
// handlers, and starts the realtime ingress. The lineup service reads
// signups and raid events through the sibling modules' repositories.
func NewLineupModule(
	ctx context.Context,
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
	transport realtime.Transport,
	guilds guildservice.Service,
	signups signupdb.Repository,
	raids raiddb.Repository,
	logger *slog.Logger,
	serviceMetrics metrics.ServiceMetrics,
	tracer trace.Tracer,
) (*Module, error) {
	repo := &lineupdb.LineupDBImpl{DB: db}
	service := lineupservice.NewLineupService(repo, signups, raids, logger, serviceMetrics, tracer)

	broadcaster := gateway.NewBroadcaster(transport, logger)
	handlers := lineuphandlers.NewLineupHandlers(service, guilds, broadcaster, logger, tracer)

	lineupRouter := lineuprouter.NewLineupRouter(logger, router, bus, bus, tracer)
	if err := lineupRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure lineup router: %w", err)
	}

	ingress := gateway.NewIngress(transport, bus, logger)
	if err := ingress.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start realtime ingress: %w", err)
	}

	return &Module{
		Service:     service,
		Ingress:     ingress,
		Broadcaster: broadcaster,
		Router:      lineupRouter,
		API:         lineuphttp.NewAPI(service, guilds, bus, logger),
	}, nil
}

// Close stops the realtime ingress.
func (m *Module) Close() error {
	return m.Ingress.Stop()
}
