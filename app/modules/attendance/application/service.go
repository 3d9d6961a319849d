package attendanceservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	attendancedb "github.com/hnaspl/woltk-calendar/app/modules/attendance/infrastructure/repositories"
	raiddb "github.com/hnaspl/woltk-calendar/app/modules/raid/infrastructure/repositories"
	"github.com/hnaspl/woltk-calendar/app/shared/attr"
	"github.com/hnaspl/woltk-calendar/app/shared/metrics"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// AttendanceService implements the Service interface.
type AttendanceService struct {
	repo    attendancedb.Repository
	raids   raiddb.Repository
	logger  *slog.Logger
	metrics metrics.ServiceMetrics
	tracer  trace.Tracer
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(
	repo attendancedb.Repository,
	raids raiddb.Repository,
	logger *slog.Logger,
	serviceMetrics metrics.ServiceMetrics,
	tracer trace.Tracer,
) *AttendanceService {
	return &AttendanceService{
		repo:    repo,
		raids:   raids,
		logger:  logger,
		metrics: serviceMetrics,
		tracer:  tracer,
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery.
func (s *AttendanceService) withTelemetry(
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

	s.metrics.RecordOperationAttempt(ctx, operationName, "AttendanceService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "AttendanceService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.Int64("event_id", int64(eventID)),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "AttendanceService")
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
		s.metrics.RecordOperationFailure(ctx, operationName, "AttendanceService")
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

	s.metrics.RecordOperationSuccess(ctx, operationName, "AttendanceService")
	return result, nil
}
