// Package raidrouter wires the raid module's handlers into the watermill
// router.
package raidrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/hnaspl/woltk-calendar/app/eventbus"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	raidhandlers "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/handlers"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
)

// RaidRouter handles routing for raid module events.
type RaidRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewRaidRouter creates a new RaidRouter.
func NewRaidRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *RaidRouter {
	return &RaidRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and streams.
// The stream subjects stay off "raids.event.>" and "raids.guild.>", which
// are realtime room subjects and must not be captured by JetStream.
func (r *RaidRouter) Configure(ctx context.Context, handlers raidhandlers.Handlers) error {
	if err := r.subscriber.CreateStream(ctx, raidevents.Stream,
		"raids.create.>", "raids.status.>", "raids.creation.>", raidevents.RaidUpdatedV1,
	); err != nil {
		return fmt.Errorf("failed to create raid stream: %w", err)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	return r.RegisterHandlers(ctx, handlers)
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandler registers a typed transformation handler.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "raid." + topic

	deps.router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.subscriber,
		handlerwrapper.WrapTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.publisher,
			nil,
			handler,
		),
	)
}

// RegisterHandlers registers event handlers for raid topics.
func (r *RaidRouter) RegisterHandlers(ctx context.Context, handlers raidhandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, raidevents.RaidCreateRequestedV1, handlers.HandleCreateRequested)
	registerHandler(deps, raidevents.RaidStatusChangeRequestedV1, handlers.HandleStatusChangeRequested)

	return nil
}

// Close stops the router.
func (r *RaidRouter) Close() error {
	return r.Router.Close()
}
