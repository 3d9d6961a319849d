// Package handlerwrapper adapts typed event handlers to watermill.
//
// Module handlers are pure transformations: they take a decoded payload and
// return zero or more (topic, payload) results. The wrapper owns decoding,
// correlation propagation, tracing, and publishing, so handler code never
// touches *message.Message directly.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hnaspl/woltk-calendar/app/shared/attr"
)

// Result pairs an outbound topic with its payload.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// Publisher is the outbound half the wrapper needs from the event bus.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
}

// Metrics records handler-level telemetry. A nil Metrics is valid.
type Metrics interface {
	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, d time.Duration)
}

// WrapTyped turns a typed transformation handler into a watermill
// message.NoPublishHandlerFunc. Decoding failures are not retried: a payload
// that cannot be unmarshaled will never succeed, so it is logged and dropped.
func WrapTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher Publisher,
	metrics Metrics,
	handler func(context.Context, *T) ([]Result, error),
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx := msg.Context()
		if id := middleware.MessageCorrelationID(msg); id != "" {
			ctx = attr.WithCorrelationID(ctx, id)
		}

		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_uuid", msg.UUID),
		))
		defer span.End()

		if metrics != nil {
			metrics.RecordHandlerAttempt(ctx, handlerName)
			start := time.Now()
			defer func() {
				metrics.RecordHandlerDuration(ctx, handlerName, time.Since(start))
			}()
		}

		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			logger.ErrorContext(ctx, "Dropping undecodable message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			span.RecordError(err)
			return nil
		}

		out, err := handler(ctx, &payload)
		if err != nil {
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			span.RecordError(err)
			return fmt.Errorf("%s: %w", handlerName, err)
		}

		for _, res := range out {
			body, err := json.Marshal(res.Payload)
			if err != nil {
				span.RecordError(err)
				return fmt.Errorf("%s: marshal result for %s: %w", handlerName, res.Topic, err)
			}
			outMsg := message.NewMessage(watermill.NewUUID(), body)
			outMsg.SetContext(ctx)
			middleware.SetCorrelationID(middleware.MessageCorrelationID(msg), outMsg)
			for k, v := range res.Metadata {
				outMsg.Metadata.Set(k, v)
			}
			if err := publisher.Publish(ctx, res.Topic, outMsg); err != nil {
				if metrics != nil {
					metrics.RecordHandlerFailure(ctx, handlerName)
				}
				span.RecordError(err)
				return fmt.Errorf("%s: publish to %s: %w", handlerName, res.Topic, err)
			}
		}

		if metrics != nil {
			metrics.RecordHandlerSuccess(ctx, handlerName)
		}
		return nil
	}
}

// NoOpMetrics satisfies Metrics without recording anything. Used in tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordHandlerAttempt(context.Context, string)                {}
func (NoOpMetrics) RecordHandlerSuccess(context.Context, string)                {}
func (NoOpMetrics) RecordHandlerFailure(context.Context, string)                {}
func (NoOpMetrics) RecordHandlerDuration(context.Context, string, time.Duration) {}
