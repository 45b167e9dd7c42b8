// ABOUTME: This file is the application entry point and shutdown choreography
// ABOUTME: Servers and the metrics collector stop on SIGINT or SIGTERM
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rank-estimator/orchestrator"
	logger "rank-estimator/utils/logger"
	"rank-estimator/utils/otel"

	"github.com/labstack/echo/v4"
)

// Run is the main application entry point. It initializes all dependencies,
// starts the servers, then waits for a shutdown signal.
func Run(ctx context.Context) error {
	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
		}
	}()

	// Initialize logger
	loggerConfig := logger.LoadLoggerConfigFromEnv()
	contextLogger := logger.NewContextLoggerWithOTel(loggerConfig, otelCfg.Enabled)
	log := contextLogger.WithContext(ctx)
	logger.Logger = log

	log.Info("Starting rank-estimator service",
		"log_level", loggerConfig.Level,
		"otel_enabled", otelCfg.Enabled,
		"service", otelCfg.ServiceName)

	// Build all dependencies
	deps, cleanup, err := BuildDependencies(ctx, log, otelCfg.Enabled)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}
	defer cleanup()

	// Start the metrics endpoint
	if err := deps.Collector.Start(ctx); err != nil {
		return fmt.Errorf("failed to start metrics collector: %w", err)
	}

	// Drop idle per-source metrics periodically so the collector map stays
	// bounded across long uptimes.
	maintenance := orchestrator.NewScheduler(ctx, log)
	maintenance.Schedule(orchestrator.Job{
		Name:  "metrics-cleanup",
		Every: time.Hour,
		Run: func(context.Context) error {
			deps.Collector.Cleanup()
			return nil
		},
	})

	// Start the API server
	httpServer := NewHTTPServer(deps, otelCfg.Enabled, otelCfg.ServiceName)
	StartHTTPServer(httpServer, deps.Config.Server.Port, log)

	log.Info("Rank estimator service started successfully",
		"port", deps.Config.Server.Port,
		"cache_backend", deps.Config.Cache.Backend,
		"database_enabled", deps.Config.Database.Enabled)

	waitForShutdown(httpServer, deps, maintenance, log)

	return nil
}

func waitForShutdown(httpServer *echo.Echo, deps *Dependencies, maintenance *orchestrator.Scheduler, log *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down rank-estimator service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), deps.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", "error", err)
	}

	maintenance.Shutdown()

	if err := deps.Collector.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping metrics collector", "error", err)
	}

	log.Info("Rank estimator service stopped")
}
