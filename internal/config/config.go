package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"
)

// Config represents the pricing service configuration.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Pricing   PricingConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int `env:"PORT"                    envDefault:"7010"`
	ReadTimeout     int `env:"SERVER_READ_TIMEOUT"     envDefault:"10"`
	WriteTimeout    int `env:"SERVER_WRITE_TIMEOUT"    envDefault:"10"`
	ShutdownTimeout int `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"15"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,X-Request-Id"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// PricingConfig contains the fare tariff. Hour windows are "start-end" pairs
// in 24h clock, inclusive on both ends.
type PricingConfig struct {
	BasePrice              float64            `env:"BASE_PRICE"                envDefault:"100"`
	PricePerKm             float64            `env:"PRICE_PER_KM"              envDefault:"15"`
	PricePerMinute         float64            `env:"PRICE_PER_MINUTE"          envDefault:"3"`
	DemandCoeffMin         float64            `env:"DEMAND_COEFF_MIN"          envDefault:"1.0"`
	DemandCoeffMax         float64            `env:"DEMAND_COEFF_MAX"          envDefault:"1.5"`
	ClassMultipliers       map[string]float64 `env:"CLASS_MULTIPLIERS"         envDefault:"comfort:1.0,business:1.8,xl:2.5" envSeparator:"," envKeyValSeparator:":"`
	LongDistanceThresholdM float64            `env:"LONG_DISTANCE_THRESHOLD_M" envDefault:"10000"`
	LongDistanceFactor     float64            `env:"LONG_DISTANCE_FACTOR"      envDefault:"0.8"`
	PeakMultiplier         float64            `env:"PEAK_MULTIPLIER"           envDefault:"1.3"`
	NightMultiplier        float64            `env:"NIGHT_MULTIPLIER"          envDefault:"1.2"`
	PeakHours              []string           `env:"PEAK_HOURS"                envDefault:"7-9,17-19" envSeparator:","`
	NightHours             string             `env:"NIGHT_HOURS"               envDefault:"22-6"`
	Timezone               string             `env:"PRICING_TIMEZONE"          envDefault:"Local"`
}

// RateLimitConfig contains per-client rate limiting settings.
type RateLimitConfig struct {
	Enabled bool    `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	RPS     float64 `env:"RATE_LIMIT_RPS"     envDefault:"20"`
	Burst   int     `env:"RATE_LIMIT_BURST"   envDefault:"40"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL"       envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*PricingConfig
	*RateLimitConfig
	*LogConfig
}

// Load loads environment files and parses configuration.
func Load() (*Config, error) {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return &cfg, nil
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Pricing,
		&cfg.RateLimit,
		&cfg.Log,
	}
}
