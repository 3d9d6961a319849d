package raidservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	raidtime "github.com/hnaspl/woltk-calendar/app/modules/raid/timeutil"
	"github.com/hnaspl/woltk-calendar/app/shared/attr"
	"github.com/hnaspl/woltk-calendar/app/shared/metrics"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// RaidService implements the Service interface.
type RaidService struct {
	repo    raiddb.Repository
	parser  raidtime.TimeParserInterface
	clock   raidtime.Clock
	logger  *slog.Logger
	metrics metrics.ServiceMetrics
	tracer  trace.Tracer
}

// NewRaidService creates a new RaidService.
func NewRaidService(
	repo raiddb.Repository,
	parser raidtime.TimeParserInterface,
	clock raidtime.Clock,
	logger *slog.Logger,
	serviceMetrics metrics.ServiceMetrics,
	tracer trace.Tracer,
) *RaidService {
	return &RaidService{
		repo:    repo,
		parser:  parser,
		clock:   clock,
		logger:  logger,
		metrics: serviceMetrics,
		tracer:  tracer,
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery.
func (s *RaidService) withTelemetry(
	ctx context.Context,
	operationName string,
	eventID sharedtypes.EventID,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.Int64("event_id", int64(eventID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "RaidService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "RaidService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.Int64("event_id", int64(eventID)),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "RaidService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Int64("event_id", int64(eventID)),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "RaidService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Int64("event_id", int64(eventID)),
			attr.Any("failure_payload", result.Failure),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "RaidService")
	return result, nil
}
