// ABOUTME: This file handles single-institution ranking requests and history
// ABOUTME: Rate-limited sources surface as advisory notes next to the result
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"rank-estimator/models"
	"rank-estimator/service"
	"rank-estimator/utils/logger"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// RankRequest represents the request body for a ranking.
type RankRequest struct {
	Institution string `json:"institution" validate:"required"`
	Country     string `json:"country"`
}

// RankResponse pairs the ranking result with any advisory source notes.
type RankResponse struct {
	Result *models.RankingResult `json:"result"`
	Notes  []models.SourceNote   `json:"notes,omitempty"`
}

// RankingHandler handles ranking requests.
type RankingHandler struct {
	ranking service.RankingService
	logger  *slog.Logger
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(ranking service.RankingService, logger *slog.Logger) *RankingHandler {
	return &RankingHandler{
		ranking: ranking,
		logger:  logger,
	}
}

// HandleRank handles POST /api/v1/rankings requests.
func (h *RankingHandler) HandleRank(c echo.Context) error {
	ctx := c.Request().Context()

	var req RankRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind ranking request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	result, notes, err := h.ranking.Rank(ctx, service.RankRequest{
		Institution: req.Institution,
		Country:     req.Country,
		RequesterID: logger.RequesterIDFromContext(ctx),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RankResponse{Result: result, Notes: notes})
}

// HandleHistory handles GET /api/v1/rankings/history requests.
func (h *RankingHandler) HandleHistory(c echo.Context) error {
	ctx := c.Request().Context()

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	history, err := h.ranking.History(ctx, logger.RequesterIDFromContext(ctx), limit)
	if err != nil {
		return err
	}
	if history == nil {
		history = []*models.RankingResult{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"results": history,
		"count":   len(history),
	})
}
