// Package signuprouter wires the signup module's handlers into the
// watermill router.
package signuprouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/hnaspl/woltk-calendar/app/eventbus"
	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	signuphandlers "github.com/hnaspl/woltk-calendar/app/modules/signup/infrastructure/handlers"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
)

// SignupRouter handles routing for signup module events.
type SignupRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewSignupRouter creates a new SignupRouter.
func NewSignupRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *SignupRouter {
	return &SignupRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and streams.
func (r *SignupRouter) Configure(ctx context.Context, handlers signuphandlers.Handlers) error {
	if err := r.subscriber.CreateStream(ctx, signupevents.Stream, "signups.>"); err != nil {
		return fmt.Errorf("failed to create signup stream: %w", err)
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
	handlerName := "signup." + topic

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

// RegisterHandlers registers event handlers for signup topics.
func (r *SignupRouter) RegisterHandlers(ctx context.Context, handlers signuphandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, signupevents.SignupCreateRequested, handlers.HandleCreateRequested)
	registerHandler(deps, signupevents.SignupUpdateRequested, handlers.HandleUpdateRequested)
	registerHandler(deps, signupevents.SignupWithdrawRequested, handlers.HandleWithdrawRequested)
	registerHandler(deps, signupevents.SignupBanRequested, handlers.HandleBanRequested)

	return nil
}

// Close stops the router.
func (r *SignupRouter) Close() error {
	return r.Router.Close()
}
