package domain

import (
	"context"
	"time"
)

// FareCalculator prices trips.
type FareCalculator interface {
	// Compute returns the price and breakdown for a validated request.
	Compute(ctx context.Context, req PricingRequest) (*PricingResult, error)
}

// DemandSource supplies the demand coefficient for a single request.
type DemandSource interface {
	// Sample returns a value in [minCoeff, maxCoeff].
	Sample(minCoeff, maxCoeff float64) float64
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// Clock returns the current wall-clock time.
type Clock func() time.Time
