package signuphandlers

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	signupservice "github.com/hnaspl/woltk-calendar/app/modules/signup/application"
	signupevents "github.com/hnaspl/woltk-calendar/app/modules/signup/events"
	"github.com/hnaspl/woltk-calendar/app/shared/handlerwrapper"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
)

// SignupHandlers implements the Handlers interface for signup events.
type SignupHandlers struct {
	service signupservice.Service
	guilds  guildservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewSignupHandlers creates a new SignupHandlers instance.
func NewSignupHandlers(service signupservice.Service, guilds guildservice.Service, logger *slog.Logger, tracer trace.Tracer) *SignupHandlers {
	return &SignupHandlers{
		service: service,
		guilds:  guilds,
		logger:  logger,
		tracer:  tracer,
	}
}

// Handlers defines the contract for signup event handlers.
type Handlers interface {
	HandleCreateRequested(ctx context.Context, payload *signupevents.SignupCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleUpdateRequested(ctx context.Context, payload *signupevents.SignupUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleWithdrawRequested(ctx context.Context, payload *signupevents.SignupWithdrawRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleBanRequested(ctx context.Context, payload *signupevents.SignupBanRequestedPayloadV1) ([]handlerwrapper.Result, error)
}

// mapResult routes a service result to the success or failure topic,
// wrapping the failure reason in the given payload constructor.
func mapResult(result results.OperationResult, successTopic, failureTopic string, failure func(reason string) any) []handlerwrapper.Result {
	if result.Success != nil {
		return []handlerwrapper.Result{{Topic: successTopic, Payload: result.Success}}
	}
	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: failureTopic, Payload: failure(result.Failure.(error).Error())}}
	}
	return nil
}
