package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/magadrive/pricing-core/internal/config"
	"github.com/magadrive/pricing-core/internal/domain"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg, err := config.Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 7010, cfg.Server.Port)
		require.Equal(t, 10, cfg.Server.ReadTimeout)
		require.Equal(t, 10, cfg.Server.WriteTimeout)
		require.Equal(t, 15, cfg.Server.ShutdownTimeout)
		require.InDelta(t, 100.0, cfg.Pricing.BasePrice, 1e-9)
		require.InDelta(t, 15.0, cfg.Pricing.PricePerKm, 1e-9)
		require.InDelta(t, 3.0, cfg.Pricing.PricePerMinute, 1e-9)
		require.InDelta(t, 1.0, cfg.Pricing.DemandCoeffMin, 1e-9)
		require.InDelta(t, 1.5, cfg.Pricing.DemandCoeffMax, 1e-9)
		require.Equal(t, map[string]float64{"comfort": 1.0, "business": 1.8, "xl": 2.5}, cfg.Pricing.ClassMultipliers)
		require.Equal(t, []string{"7-9", "17-19"}, cfg.Pricing.PeakHours)
		require.Equal(t, "22-6", cfg.Pricing.NightHours)
		require.Equal(t, "Local", cfg.Pricing.Timezone)
		require.False(t, cfg.RateLimit.Enabled)
		require.Equal(t, "info", cfg.Log.Level)
		require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("PORT", "9000")
		t.Setenv("BASE_PRICE", "120")
		t.Setenv("PRICE_PER_KM", "20.5")
		t.Setenv("PRICE_PER_MINUTE", "4")
		t.Setenv("DEMAND_COEFF_MIN", "1.1")
		t.Setenv("DEMAND_COEFF_MAX", "2.0")
		t.Setenv("CLASS_MULTIPLIERS", "comfort:1.0,business:2.0")
		t.Setenv("PEAK_HOURS", "8-10")
		t.Setenv("NIGHT_HOURS", "23-5")
		t.Setenv("PRICING_TIMEZONE", "Europe/Moscow")
		t.Setenv("RATE_LIMIT_ENABLED", "true")
		t.Setenv("RATE_LIMIT_RPS", "5")
		t.Setenv("RATE_LIMIT_BURST", "10")

		cfg, err := config.Load()
		require.NoError(t, err)

		// Verify loaded values
		require.Equal(t, 9000, cfg.Server.Port)
		require.InDelta(t, 120.0, cfg.Pricing.BasePrice, 1e-9)
		require.InDelta(t, 20.5, cfg.Pricing.PricePerKm, 1e-9)
		require.InDelta(t, 4.0, cfg.Pricing.PricePerMinute, 1e-9)
		require.InDelta(t, 1.1, cfg.Pricing.DemandCoeffMin, 1e-9)
		require.InDelta(t, 2.0, cfg.Pricing.DemandCoeffMax, 1e-9)
		require.Equal(t, map[string]float64{"comfort": 1.0, "business": 2.0}, cfg.Pricing.ClassMultipliers)
		require.Equal(t, []string{"8-10"}, cfg.Pricing.PeakHours)
		require.Equal(t, "23-5", cfg.Pricing.NightHours)
		require.Equal(t, "Europe/Moscow", cfg.Pricing.Timezone)
		require.True(t, cfg.RateLimit.Enabled)
		require.InDelta(t, 5.0, cfg.RateLimit.RPS, 1e-9)
		require.Equal(t, 10, cfg.RateLimit.Burst)
	})

	t.Run("should fail on malformed numbers", func(t *testing.T) {
		t.Setenv("BASE_PRICE", "cheap")

		_, err := config.Load()
		require.Error(t, err)
	})
}

func TestParseDependenciesConfig(t *testing.T) {
	os.Clearenv()

	cfg, err := config.Load()
	require.NoError(t, err)

	deps := config.ParseDependenciesConfig(cfg)
	require.Same(t, &cfg.Server, deps.ServerConfig)
	require.Same(t, &cfg.Pricing, deps.PricingConfig)
	require.Same(t, &cfg.RateLimit, deps.RateLimitConfig)
}

func TestBuildTariff(t *testing.T) {
	t.Run("should build tariff from defaults", func(t *testing.T) {
		os.Clearenv()

		cfg, err := config.Load()
		require.NoError(t, err)

		tariff, err := config.BuildTariff(&cfg.Pricing)
		require.NoError(t, err)

		require.InDelta(t, 100.0, tariff.BasePrice, 1e-9)
		require.InDelta(t, 1.8, tariff.Classes.Multiplier(domain.ClassBusiness), 1e-9)
		require.InDelta(t, 1.0, tariff.Classes.Multiplier("unknown"), 1e-9)
		require.Equal(t, []domain.HourWindow{{Start: 7, End: 9}, {Start: 17, End: 19}}, tariff.PeakWindows)
		require.Equal(t, []domain.HourWindow{{Start: 22, End: 6}}, tariff.NightWindows)
		require.Equal(t, time.Local, tariff.Location)
	})

	t.Run("should normalize class names", func(t *testing.T) {
		cfg := validPricing()
		cfg.ClassMultipliers = map[string]float64{" XL ": 3.0}

		tariff, err := config.BuildTariff(&cfg)
		require.NoError(t, err)
		require.InDelta(t, 3.0, tariff.Classes.Multiplier(domain.ClassXL), 1e-9)
	})

	t.Run("should allow an empty night window list", func(t *testing.T) {
		cfg := validPricing()
		cfg.NightHours = ""

		tariff, err := config.BuildTariff(&cfg)
		require.NoError(t, err)
		require.Empty(t, tariff.NightWindows)
	})

	tests := []struct {
		name   string
		mutate func(cfg *config.PricingConfig)
	}{
		{name: "bad peak hours", mutate: func(cfg *config.PricingConfig) { cfg.PeakHours = []string{"7to9"} }},
		{name: "bad night hours", mutate: func(cfg *config.PricingConfig) { cfg.NightHours = "22-30" }},
		{name: "unknown timezone", mutate: func(cfg *config.PricingConfig) { cfg.Timezone = "Mars/Olympus" }},
		{name: "inverted demand range", mutate: func(cfg *config.PricingConfig) {
			cfg.DemandCoeffMin = 2
			cfg.DemandCoeffMax = 1
		}},
	}

	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			cfg := validPricing()
			tt.mutate(&cfg)

			_, err := config.BuildTariff(&cfg)
			require.Error(t, err)
		})
	}
}

func validPricing() config.PricingConfig {
	return config.PricingConfig{
		BasePrice:              100,
		PricePerKm:             15,
		PricePerMinute:         3,
		DemandCoeffMin:         1.0,
		DemandCoeffMax:         1.5,
		ClassMultipliers:       map[string]float64{"comfort": 1.0},
		LongDistanceThresholdM: 10000,
		LongDistanceFactor:     0.8,
		PeakMultiplier:         1.3,
		NightMultiplier:        1.2,
		PeakHours:              []string{"7-9", "17-19"},
		NightHours:             "22-6",
		Timezone:               "UTC",
	}
}
