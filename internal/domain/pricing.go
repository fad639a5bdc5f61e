package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const hoursPerDay = 24

// ErrInvalidConfig indicates a tariff that cannot price trips correctly.
var ErrInvalidConfig = errors.New("invalid pricing config")

// HourWindow is a range of hours of day, inclusive on both ends.
// A window whose start is after its end wraps across midnight.
type HourWindow struct {
	Start int
	End   int
}

// ParseHourWindow parses a window in "start-end" form, e.g. "22-6".
func ParseHourWindow(s string) (HourWindow, error) {
	startStr, endStr, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		return HourWindow{}, fmt.Errorf("hour window %q must be in start-end form", s)
	}

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return HourWindow{}, fmt.Errorf("invalid start hour in %q: %w", s, err)
	}

	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return HourWindow{}, fmt.Errorf("invalid end hour in %q: %w", s, err)
	}

	w := HourWindow{Start: start, End: end}
	if !w.valid() {
		return HourWindow{}, fmt.Errorf("hour window %q out of range 0-23", s)
	}

	return w, nil
}

// Contains reports whether hour falls inside the window.
func (w HourWindow) Contains(hour int) bool {
	if w.Start <= w.End {
		return hour >= w.Start && hour <= w.End
	}
	return hour >= w.Start || hour <= w.End
}

func (w HourWindow) String() string {
	return fmt.Sprintf("%d-%d", w.Start, w.End)
}

func (w HourWindow) valid() bool {
	return w.Start >= 0 && w.Start < hoursPerDay && w.End >= 0 && w.End < hoursPerDay
}

// PricingConfig is the process-wide tariff. It is read-only after startup.
type PricingConfig struct {
	BasePrice      float64 // RUB
	PricePerKm     float64 // RUB per kilometer
	PricePerMinute float64 // RUB per minute

	DemandMin float64
	DemandMax float64

	Classes ClassTable

	LongDistanceThresholdM float64
	LongDistanceFactor     float64 // applied strictly above the threshold

	PeakMultiplier  float64
	NightMultiplier float64
	PeakWindows     []HourWindow
	NightWindows    []HourWindow

	Location *time.Location
}

// DefaultPricingConfig returns the standard tariff in the local time zone.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		BasePrice:      100,
		PricePerKm:     15,
		PricePerMinute: 3,
		DemandMin:      1.0,
		DemandMax:      1.5,
		Classes: NewClassTable(map[VehicleClass]float64{
			ClassComfort:  1.0,
			ClassBusiness: 1.8,
			ClassXL:       2.5,
		}),
		LongDistanceThresholdM: 10000,
		LongDistanceFactor:     0.8,
		PeakMultiplier:         1.3,
		NightMultiplier:        1.2,
		PeakWindows: []HourWindow{
			{Start: 7, End: 9},
			{Start: 17, End: 19},
		},
		NightWindows: []HourWindow{
			{Start: 22, End: 6},
		},
		Location: time.Local,
	}
}

// Validate checks the tariff invariants.
func (c PricingConfig) Validate() error {
	switch {
	case c.BasePrice < 0:
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidConfig)
	case c.PricePerKm < 0:
		return fmt.Errorf("%w: price per km must not be negative", ErrInvalidConfig)
	case c.PricePerMinute < 0:
		return fmt.Errorf("%w: price per minute must not be negative", ErrInvalidConfig)
	case c.DemandMin <= 0:
		return fmt.Errorf("%w: demand coefficient minimum must be positive", ErrInvalidConfig)
	case c.DemandMax < c.DemandMin:
		return fmt.Errorf("%w: demand coefficient range [%g, %g] is empty",
			ErrInvalidConfig, c.DemandMin, c.DemandMax)
	case c.LongDistanceThresholdM < 0:
		return fmt.Errorf("%w: long distance threshold must not be negative", ErrInvalidConfig)
	case c.LongDistanceFactor <= 0 || c.LongDistanceFactor > 1:
		return fmt.Errorf("%w: long distance factor must be in (0, 1]", ErrInvalidConfig)
	case c.PeakMultiplier <= 0:
		return fmt.Errorf("%w: peak multiplier must be positive", ErrInvalidConfig)
	case c.NightMultiplier <= 0:
		return fmt.Errorf("%w: night multiplier must be positive", ErrInvalidConfig)
	}

	for class, mult := range c.Classes.multipliers {
		if mult <= 0 {
			return fmt.Errorf("%w: multiplier for class %q must be positive", ErrInvalidConfig, class)
		}
	}

	for _, w := range append(append([]HourWindow{}, c.PeakWindows...), c.NightWindows...) {
		if !w.valid() {
			return fmt.Errorf("%w: hour window %s out of range 0-23", ErrInvalidConfig, w)
		}
	}

	return nil
}

// DistanceMultiplier returns the long-distance discount for a trip length.
// Trips at exactly the threshold are not discounted.
func (c PricingConfig) DistanceMultiplier(distanceM float64) float64 {
	if distanceM > c.LongDistanceThresholdM {
		return c.LongDistanceFactor
	}
	return neutralMultiplier
}

// TimeMultiplier returns the time-of-day multiplier for now.
// Peak windows take priority over night windows.
func (c PricingConfig) TimeMultiplier(now time.Time) float64 {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	hour := now.In(loc).Hour()

	for _, w := range c.PeakWindows {
		if w.Contains(hour) {
			return c.PeakMultiplier
		}
	}

	for _, w := range c.NightWindows {
		if w.Contains(hour) {
			return c.NightMultiplier
		}
	}

	return neutralMultiplier
}
