package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	metersPerKm      = 1000.0
	secondsPerMinute = 60.0
	demandPrecision  = 2 // decimal places kept from a demand sample
)

// maxPrice is the largest price representable in a PricingResult.
var maxPrice = decimal.NewFromInt(math.MaxInt64)

// ErrPriceCalculation indicates the tariff produced a price that cannot be charged.
var ErrPriceCalculation = errors.New("price calculation failed")

// CalculateFare prices a trip at time now with the given demand coefficient.
// Zero distance or duration is valid and prices the base amount alone.
func CalculateFare(
	cfg PricingConfig,
	req PricingRequest,
	now time.Time,
	demandCoeff float64,
) (*PricingResult, error) {
	base := cfg.BasePrice
	if req.BasePrice != nil {
		base = float64(*req.BasePrice)
	}

	distanceAmount := req.DistanceM / metersPerKm * cfg.PricePerKm
	timeAmount := req.EtaSec / secondsPerMinute * cfg.PricePerMinute
	subtotal := base + distanceAmount + timeAmount

	classMult := cfg.Classes.Multiplier(req.Class)
	distanceMult := cfg.DistanceMultiplier(req.DistanceM)
	timeMult := cfg.TimeMultiplier(now)

	raw := subtotal * classMult * distanceMult * timeMult * demandCoeff
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw < 0 {
		return nil, fmt.Errorf("%w: raw price %v", ErrPriceCalculation, raw)
	}

	// decimal rounds half away from zero.
	rounded := decimal.NewFromFloat(raw).Round(0)
	if rounded.GreaterThan(maxPrice) {
		return nil, fmt.Errorf("%w: raw price %v exceeds %s", ErrPriceCalculation, raw, maxPrice)
	}
	price := rounded.IntPart()

	return &PricingResult{
		Price:    price,
		Currency: CurrencyRUB,
		Breakdown: Breakdown{
			Base:               base,
			Distance:           distanceAmount,
			Time:               timeAmount,
			Subtotal:           subtotal,
			ClassMultiplier:    classMult,
			DistanceMultiplier: distanceMult,
			TimeMultiplier:     timeMult,
			DemandCoeff:        demandCoeff,
		},
	}, nil
}

// FareEngine prices requests against a fixed tariff, sampling the clock and
// demand source it was built with.
type FareEngine struct {
	config PricingConfig
	demand DemandSource
	clock  Clock
}

// NewFareEngine creates a fare engine (DI constructor).
func NewFareEngine(cfg PricingConfig, demand DemandSource, clock Clock) *FareEngine {
	if clock == nil {
		clock = time.Now
	}

	return &FareEngine{
		config: cfg,
		demand: demand,
		clock:  clock,
	}
}

// Compute prices a validated request.
func (e *FareEngine) Compute(_ context.Context, req PricingRequest) (*PricingResult, error) {
	if e.demand == nil {
		return nil, errors.New("demand source not configured")
	}

	coeff := e.sampleDemand()

	result, err := CalculateFare(e.config, req, e.clock(), coeff)
	if err != nil {
		return nil, fmt.Errorf("failed to price %s trip: %w", req.Class, err)
	}

	return result, nil
}

// sampleDemand draws a coefficient and rounds it so the reported value is
// exactly the one applied. Rounding never moves an in-range sample outside
// the configured bounds.
func (e *FareEngine) sampleDemand() float64 {
	lo, hi := e.config.DemandMin, e.config.DemandMax

	raw := e.demand.Sample(lo, hi)
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return raw
	}

	coeff := decimal.NewFromFloat(raw).Round(demandPrecision).InexactFloat64()
	switch {
	case raw >= lo && coeff < lo:
		return lo
	case raw <= hi && coeff > hi:
		return hi
	}
	return coeff
}
