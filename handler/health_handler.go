// ABOUTME: This file handles liveness and dependency health endpoints
// ABOUTME: Dependency checks are injected so optional backends stay optional
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rank-estimator/orchestrator"
)

// dependencyTimeout bounds each individual dependency probe.
const dependencyTimeout = 5 * time.Second

// DependencyCheck probes one external dependency.
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checks []DependencyCheck
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler over the given dependency
// probes. An empty probe list is valid for dependency-free deployments.
func NewHealthHandler(checks []DependencyCheck, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// HandleHealth handles GET /api/v1/health requests.
func (h *HealthHandler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "rank-estimator",
	})
}

// HandleDependencies handles GET /api/v1/health/dependencies requests. The
// probes run concurrently; one failure degrades the overall status but the
// response still enumerates each result.
func (h *HealthHandler) HandleDependencies(c echo.Context) error {
	ctx := c.Request().Context()

	probes := orchestrator.FanOut(ctx, len(h.checks), h.checks,
		func(ctx context.Context, check DependencyCheck) (struct{}, error) {
			probeCtx, cancel := context.WithTimeout(ctx, dependencyTimeout)
			defer cancel()
			return struct{}{}, check.Check(probeCtx)
		})

	overall := "healthy"
	results := make([]map[string]string, 0, len(h.checks))
	for i, probe := range probes {
		entry := map[string]string{"name": h.checks[i].Name, "status": "healthy"}
		if probe.Err != nil {
			h.logger.ErrorContext(ctx, "dependency health check failed",
				"dependency", h.checks[i].Name, "error", probe.Err)
			entry["status"] = "unhealthy"
			entry["error"] = probe.Err.Error()
			overall = "degraded"
		}
		results = append(results, entry)
	}

	status := http.StatusOK
	if overall != "healthy" {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]interface{}{
		"status":       overall,
		"dependencies": results,
	})
}
