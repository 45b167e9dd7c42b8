// ABOUTME: This file handles per-requester source toggles and budget status
// ABOUTME: Enablement changes are stored per requester, budgets are global
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"rank-estimator/models"
	"rank-estimator/repository"
	"rank-estimator/service"
	"rank-estimator/utils/logger"
)

// UpdateSourcesRequest is the PUT body for source enablement.
type UpdateSourcesRequest struct {
	Wikipedia   bool `json:"wikipedia"`
	Search      bool `json:"search"`
	Webometrics bool `json:"webometrics"`
}

// SourceHandler handles the source enablement and limits endpoints.
type SourceHandler struct {
	enablement repository.EnablementRepository
	limits     service.LimitReporter
	logger     *slog.Logger
}

// NewSourceHandler creates a new source handler.
func NewSourceHandler(enablement repository.EnablementRepository, limits service.LimitReporter, logger *slog.Logger) *SourceHandler {
	return &SourceHandler{
		enablement: enablement,
		limits:     limits,
		logger:     logger,
	}
}

// HandleGetSources handles GET /api/v1/sources requests.
func (h *SourceHandler) HandleGetSources(c echo.Context) error {
	ctx := c.Request().Context()

	enablement, err := h.enablement.Get(ctx, logger.RequesterIDFromContext(ctx))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, enablement)
}

// HandleUpdateSources handles PUT /api/v1/sources requests. The body carries
// the full toggle set; omitted fields default to off.
func (h *SourceHandler) HandleUpdateSources(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpdateSourcesRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind sources request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	requesterID := logger.RequesterIDFromContext(ctx)
	enablement := models.SourceEnablement{
		Wikipedia:   req.Wikipedia,
		Search:      req.Search,
		Webometrics: req.Webometrics,
	}
	if err := h.enablement.Set(ctx, requesterID, enablement); err != nil {
		return err
	}

	updated, err := h.enablement.Get(ctx, requesterID)
	if err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "source enablement updated",
		"requester_id", requesterID,
		"wikipedia", updated.Wikipedia,
		"search", updated.Search,
		"webometrics", updated.Webometrics)

	return c.JSON(http.StatusOK, updated)
}

// HandleLimits handles GET /api/v1/limits requests.
func (h *SourceHandler) HandleLimits(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sources": h.limits.Status(),
	})
}
