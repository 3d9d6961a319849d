// Package lineuprouter wires the lineup module's handlers into the
// watermill router.
package lineuprouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/hnaspl/woltk-calendar/app/eventbus"
	lineupevents "github.com/hnaspl/woltk-calendar/app/modules/lineup/events"
	lineuphandlers "github.com/hnaspl/woltk-calendar/app/modules/lineup/infrastructure/handlers"
	raidevents "github.com/hnaspl/woltk-calendar/app/modules/raid/events"
	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
)

// LineupRouter handles routing for lineup module events.
type LineupRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewLineupRouter creates a new LineupRouter.
func NewLineupRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *LineupRouter {
	return &LineupRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and streams.
func (r *LineupRouter) Configure(ctx context.Context, handlers lineuphandlers.Handlers) error {
	if err := r.subscriber.CreateStream(ctx, lineupevents.Stream, "lineups.>"); err != nil {
		return fmt.Errorf("failed to create lineup stream: %w", err)
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
	handlerName := "lineup." + topic

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

// RegisterHandlers registers event handlers for lineup topics.
func (r *LineupRouter) RegisterHandlers(ctx context.Context, handlers lineuphandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, lineupevents.LineupAssignRequestedV1, handlers.HandleAssignRequested)
	registerHandler(deps, lineupevents.LineupUnassignRequestedV1, handlers.HandleUnassignRequested)
	registerHandler(deps, lineupevents.LineupBenchReorderRequestedV1, handlers.HandleBenchReorderRequested)
	registerHandler(deps, lineupevents.LineupReplaceRequestedV1, handlers.HandleReplaceRequested)
	registerHandler(deps, lineupevents.LineupConfirmRequestedV1, handlers.HandleConfirmRequested)

	registerHandler(deps, lineupevents.LineupChangedV1, handlers.HandleLineupChanged)
	registerHandler(deps, lineupevents.LineupChangeFailedV1, handlers.HandleChangeFailed)
	registerHandler(deps, lineupevents.LineupConfirmedV1, handlers.HandleLineupConfirmed)
	registerHandler(deps, raidevents.RaidStatusChangedV1, handlers.HandleRaidStatusChanged)

	registerHandler(deps, signupevents.SignupCreated, handlers.HandleSignupCreated)
	registerHandler(deps, signupevents.SignupUpdated, handlers.HandleSignupUpdated)
	registerHandler(deps, signupevents.SignupWithdrawn, handlers.HandleSignupWithdrawn)
	registerHandler(deps, signupevents.SignupBanned, handlers.HandleSignupBanChanged)
	registerHandler(deps, signupevents.SignupUnbanned, handlers.HandleSignupBanChanged)

	return nil
}

// Close stops the router.
func (r *LineupRouter) Close() error {
	return r.Router.Close()
}
