package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magadrive/pricing-core/internal/domain"
)

func TestParseHourWindow(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    domain.HourWindow
		expectError bool
	}{
		{name: "simple range", input: "7-9", expected: domain.HourWindow{Start: 7, End: 9}},
		{name: "wrapping range", input: "22-6", expected: domain.HourWindow{Start: 22, End: 6}},
		{name: "spaces are trimmed", input: " 17 - 19 ", expected: domain.HourWindow{Start: 17, End: 19}},
		{name: "single hour", input: "0-0", expected: domain.HourWindow{Start: 0, End: 0}},
		{name: "missing separator", input: "7", expectError: true},
		{name: "non numeric", input: "a-9", expectError: true},
		{name: "hour out of range", input: "20-24", expectError: true},
		{name: "negative hour", input: "-1-5", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := domain.ParseHourWindow(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expected, w)
		})
	}
}

func TestHourWindow_Contains(t *testing.T) {
	day := domain.HourWindow{Start: 7, End: 9}
	night := domain.HourWindow{Start: 22, End: 6}

	require.False(t, day.Contains(6))
	require.True(t, day.Contains(7))
	require.True(t, day.Contains(9))
	require.False(t, day.Contains(10))

	require.True(t, night.Contains(22))
	require.True(t, night.Contains(23))
	require.True(t, night.Contains(0))
	require.True(t, night.Contains(6))
	require.False(t, night.Contains(7))
	require.False(t, night.Contains(21))

	require.Equal(t, "22-6", night.String())
}

func TestPricingConfig_Validate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, domain.DefaultPricingConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(cfg *domain.PricingConfig)
	}{
		{name: "negative base price", mutate: func(cfg *domain.PricingConfig) { cfg.BasePrice = -1 }},
		{name: "negative per km", mutate: func(cfg *domain.PricingConfig) { cfg.PricePerKm = -1 }},
		{name: "negative per minute", mutate: func(cfg *domain.PricingConfig) { cfg.PricePerMinute = -1 }},
		{name: "zero demand minimum", mutate: func(cfg *domain.PricingConfig) { cfg.DemandMin = 0 }},
		{name: "inverted demand range", mutate: func(cfg *domain.PricingConfig) {
			cfg.DemandMin = 1.5
			cfg.DemandMax = 1.0
		}},
		{name: "negative threshold", mutate: func(cfg *domain.PricingConfig) { cfg.LongDistanceThresholdM = -1 }},
		{name: "discount factor above one", mutate: func(cfg *domain.PricingConfig) { cfg.LongDistanceFactor = 1.2 }},
		{name: "zero discount factor", mutate: func(cfg *domain.PricingConfig) { cfg.LongDistanceFactor = 0 }},
		{name: "zero peak multiplier", mutate: func(cfg *domain.PricingConfig) { cfg.PeakMultiplier = 0 }},
		{name: "zero night multiplier", mutate: func(cfg *domain.PricingConfig) { cfg.NightMultiplier = 0 }},
		{name: "zero class multiplier", mutate: func(cfg *domain.PricingConfig) {
			cfg.Classes = domain.NewClassTable(map[domain.VehicleClass]float64{domain.ClassXL: 0})
		}},
		{name: "peak window out of range", mutate: func(cfg *domain.PricingConfig) {
			cfg.PeakWindows = []domain.HourWindow{{Start: 7, End: 25}}
		}},
		{name: "night window out of range", mutate: func(cfg *domain.PricingConfig) {
			cfg.NightWindows = []domain.HourWindow{{Start: -2, End: 6}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultPricingConfig()
			tt.mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
		})
	}
}

func TestClassTable(t *testing.T) {
	source := map[domain.VehicleClass]float64{
		domain.ClassComfort:  1.0,
		domain.ClassBusiness: 1.8,
	}
	table := domain.NewClassTable(source)

	t.Run("known class returns its multiplier", func(t *testing.T) {
		require.InDelta(t, 1.8, table.Multiplier(domain.ClassBusiness), 1e-9)
	})

	t.Run("unknown class returns neutral multiplier", func(t *testing.T) {
		require.InDelta(t, 1.0, table.Multiplier("scooter"), 1e-9)
		require.InDelta(t, 1.0, table.Multiplier(""), 1e-9)
	})

	t.Run("table is isolated from its source map", func(t *testing.T) {
		source[domain.ClassBusiness] = 9.9
		require.InDelta(t, 1.8, table.Multiplier(domain.ClassBusiness), 1e-9)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		snap := table.Snapshot()
		require.Len(t, snap, 2)
		snap["comfort"] = 5
		require.InDelta(t, 1.0, table.Multiplier(domain.ClassComfort), 1e-9)
		require.Equal(t, 2, table.Len())
	})
}

func TestRandomDemandSource_Sample(t *testing.T) {
	source := domain.NewRandomDemandSource()

	t.Run("samples stay within range", func(t *testing.T) {
		for range 1000 {
			v := source.Sample(1.0, 1.5)
			require.GreaterOrEqual(t, v, 1.0)
			require.LessOrEqual(t, v, 1.5)
		}
	})

	t.Run("degenerate range returns minimum", func(t *testing.T) {
		require.InDelta(t, 1.2, source.Sample(1.2, 1.2), 1e-12)
		require.InDelta(t, 1.2, source.Sample(1.2, 1.0), 1e-12)
	})

	t.Run("concurrent sampling is safe", func(t *testing.T) {
		const workers = 16
		const perWorker = 200

		var wg sync.WaitGroup
		results := make(chan float64, workers*perWorker)

		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range perWorker {
					results <- source.Sample(1.0, 2.0)
				}
			}()
		}

		wg.Wait()
		close(results)

		count := 0
		for v := range results {
			require.GreaterOrEqual(t, v, 1.0)
			require.LessOrEqual(t, v, 2.0)
			count++
		}
		require.Equal(t, workers*perWorker, count)
	})
}

func TestFixedDemand_Sample(t *testing.T) {
	require.InDelta(t, 1.25, domain.FixedDemand(1.25).Sample(1.0, 1.5), 1e-12)
}
