package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/magadrive/pricing-core/internal/domain"
)

// BuildTariff converts the pricing settings into a validated engine tariff.
func BuildTariff(cfg *PricingConfig) (domain.PricingConfig, error) {
	peak, err := parseWindows(cfg.PeakHours)
	if err != nil {
		return domain.PricingConfig{}, fmt.Errorf("PEAK_HOURS: %w", err)
	}

	night, err := parseWindows(strings.Split(cfg.NightHours, ","))
	if err != nil {
		return domain.PricingConfig{}, fmt.Errorf("NIGHT_HOURS: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return domain.PricingConfig{}, fmt.Errorf("PRICING_TIMEZONE: %w", err)
	}

	classes := make(map[domain.VehicleClass]float64, len(cfg.ClassMultipliers))
	for name, mult := range cfg.ClassMultipliers {
		classes[domain.VehicleClass(strings.ToLower(strings.TrimSpace(name)))] = mult
	}

	tariff := domain.PricingConfig{
		BasePrice:              cfg.BasePrice,
		PricePerKm:             cfg.PricePerKm,
		PricePerMinute:         cfg.PricePerMinute,
		DemandMin:              cfg.DemandCoeffMin,
		DemandMax:              cfg.DemandCoeffMax,
		Classes:                domain.NewClassTable(classes),
		LongDistanceThresholdM: cfg.LongDistanceThresholdM,
		LongDistanceFactor:     cfg.LongDistanceFactor,
		PeakMultiplier:         cfg.PeakMultiplier,
		NightMultiplier:        cfg.NightMultiplier,
		PeakWindows:            peak,
		NightWindows:           night,
		Location:               loc,
	}

	if err := tariff.Validate(); err != nil {
		return domain.PricingConfig{}, err
	}

	return tariff, nil
}

func parseWindows(raw []string) ([]domain.HourWindow, error) {
	windows := make([]domain.HourWindow, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}

		w, err := domain.ParseHourWindow(s)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}
