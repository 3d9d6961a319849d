// Package attr provides slog attribute helpers shared by all modules.
package attr

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationIDFromContext returns the correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// ExtractCorrelationID builds a log attribute from the context's
// correlation ID so every log line for one message chain lines up.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String(middleware.CorrelationIDMetadataKey, CorrelationIDFromContext(ctx))
}

func String(key, value string) slog.Attr    { return slog.String(key, value) }
func Int(key string, value int) slog.Attr   { return slog.Int(key, value) }
func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }
func Any(key string, value any) slog.Attr   { return slog.Any(key, value) }
func Error(err error) slog.Attr             { return slog.Any("error", err) }
