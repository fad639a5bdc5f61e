package observability

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	// TraceIDKey holds the request correlation id.
	TraceIDKey contextKey = "trace_id"

	// VehicleClassKey holds the requested vehicle class.
	VehicleClassKey contextKey = "vehicle_class"
)

// WithTraceID injects trace ID into context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// WithVehicleClass injects vehicle class into context.
func WithVehicleClass(ctx context.Context, class string) context.Context {
	return context.WithValue(ctx, VehicleClassKey, class)
}

// GetTraceID extracts trace ID from context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// GetVehicleClass extracts vehicle class from context.
func GetVehicleClass(ctx context.Context) string {
	if class, ok := ctx.Value(VehicleClassKey).(string); ok {
		return class
	}
	return ""
}

// GenerateTraceID generates a new correlation id (UUID).
func GenerateTraceID() string {
	return uuid.New().String()
}

// ResolveTraceID returns the caller's trace id when present, or a new one.
func ResolveTraceID(header string) string {
	traceID := strings.TrimSpace(header)
	if traceID == "" {
		return GenerateTraceID()
	}
	return traceID
}
