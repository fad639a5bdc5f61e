package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/magadrive/pricing-core/internal/config"
	"github.com/magadrive/pricing-core/internal/domain"
	"github.com/magadrive/pricing-core/internal/http"
	"github.com/magadrive/pricing-core/internal/http/middleware"
	"github.com/magadrive/pricing-core/internal/observability"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server, logger *zap.Logger) error {
		defer func() { _ = logger.Sync() }()
		return run(server)
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run serves until SIGINT/SIGTERM, then drains in-flight requests.
func run(server *http.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-serverErr
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}
	if err := container.Provide(config.BuildTariff); err != nil {
		log.Fatalf("Failed to provide tariff: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Fare Engine
	if err := container.Provide(func() domain.DemandSource {
		return domain.NewRandomDemandSource()
	}); err != nil {
		log.Fatalf("Failed to provide demand source: %v", err)
	}
	if err := container.Provide(func() domain.Clock {
		return time.Now
	}); err != nil {
		log.Fatalf("Failed to provide clock: %v", err)
	}
	if err := container.Provide(func(
		tariff domain.PricingConfig,
		demand domain.DemandSource,
		clock domain.Clock,
	) domain.FareCalculator {
		return domain.NewFareEngine(tariff, demand, clock)
	}); err != nil {
		log.Fatalf("Failed to provide fare engine: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
