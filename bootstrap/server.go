// ABOUTME: This file builds and starts the Echo HTTP server
// ABOUTME: Routes, middleware and tracing are assembled from the wired deps
package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	appmiddleware "rank-estimator/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// NewHTTPServer creates and configures the Echo HTTP server.
func NewHTTPServer(deps *Dependencies, otelEnabled bool, otelServiceName string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Custom error handler for consistent error responses
	e.HTTPErrorHandler = appmiddleware.CustomHTTPErrorHandler(deps.Logger)

	if otelEnabled {
		e.Use(otelecho.Middleware(otelServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(appmiddleware.RequestIDMiddleware())
	e.Use(appmiddleware.RequesterIdentity(deps.Config.Auth))

	// Access logging, skipping the liveness probe to keep logs quiet.
	logging := appmiddleware.LoggingMiddleware(deps.ContextLogger)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		logged := logging(next)
		return func(c echo.Context) error {
			if path := c.Request().URL.Path; path == "/health" || path == "/api/v1/health" {
				return next(c)
			}
			return logged(c)
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api/v1")

	api.POST("/rankings", deps.RankingHandler.HandleRank)
	api.GET("/rankings/history", deps.RankingHandler.HandleHistory)

	api.POST("/batch", deps.BatchHandler.HandleStart)
	api.GET("/batch", deps.BatchHandler.HandleList)
	api.GET("/batch/:id", deps.BatchHandler.HandleSnapshot)
	api.GET("/batch/:id/results", deps.BatchHandler.HandleResults)
	api.DELETE("/batch/:id", deps.BatchHandler.HandleCancel)

	api.GET("/sources", deps.SourceHandler.HandleGetSources)
	api.PUT("/sources", deps.SourceHandler.HandleUpdateSources)
	api.GET("/limits", deps.SourceHandler.HandleLimits)

	api.GET("/health", deps.HealthHandler.HandleHealth)
	api.GET("/health/dependencies", deps.HealthHandler.HandleDependencies)

	return e
}

// StartHTTPServer starts the HTTP server in a goroutine.
func StartHTTPServer(e *echo.Echo, port int, log *slog.Logger) {
	go func() {
		addr := fmt.Sprintf(":%d", port)
		log.Info("Starting HTTP server", "port", port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()
}
