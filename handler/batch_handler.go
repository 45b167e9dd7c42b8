// ABOUTME: This file handles batch ranking job submission, polling and cancel
// ABOUTME: Jobs run asynchronously; clients poll snapshots and fetch results
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"rank-estimator/models"
	"rank-estimator/service"
	"rank-estimator/utils/logger"
)

// maxBatchItems bounds one batch submission.
const maxBatchItems = 500

// BatchItem is one institution row in a batch submission.
type BatchItem struct {
	Institution string `json:"institution" validate:"required"`
	Country     string `json:"country"`
}

// StartBatchRequest is the POST body for batch submission.
type StartBatchRequest struct {
	Items []BatchItem `json:"items" validate:"required"`
}

// BatchHandler handles batch job endpoints.
type BatchHandler struct {
	batch  service.BatchService
	logger *slog.Logger
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(batch service.BatchService, logger *slog.Logger) *BatchHandler {
	return &BatchHandler{
		batch:  batch,
		logger: logger,
	}
}

// HandleStart handles POST /api/v1/batch requests.
func (h *BatchHandler) HandleStart(c echo.Context) error {
	ctx := c.Request().Context()

	var req StartBatchRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind batch request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if len(req.Items) > maxBatchItems {
		return echo.NewHTTPError(http.StatusBadRequest, "Too many batch items")
	}

	rows := make([]models.BatchRow, 0, len(req.Items))
	for _, item := range req.Items {
		if strings.TrimSpace(item.Institution) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Every batch item needs an institution name")
		}
		rows = append(rows, models.BatchRow{
			Institution: item.Institution,
			Country:     item.Country,
		})
	}

	jobID, err := h.batch.Start(ctx, rows, logger.RequesterIDFromContext(ctx))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"job_id": jobID,
		"total":  len(rows),
	})
}

// HandleList handles GET /api/v1/batch requests.
func (h *BatchHandler) HandleList(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"jobs": h.batch.List(),
	})
}

// HandleSnapshot handles GET /api/v1/batch/:id requests.
func (h *BatchHandler) HandleSnapshot(c echo.Context) error {
	snapshot, err := h.batch.Snapshot(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

// HandleResults handles GET /api/v1/batch/:id/results requests.
func (h *BatchHandler) HandleResults(c echo.Context) error {
	jobID := c.Param("id")
	results, err := h.batch.Results(jobID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"job_id":  jobID,
		"results": results,
		"count":   len(results),
	})
}

// HandleCancel handles DELETE /api/v1/batch/:id requests. Cancellation is
// cooperative: the job stops between items and keeps its partial results.
func (h *BatchHandler) HandleCancel(c echo.Context) error {
	jobID := c.Param("id")
	if err := h.batch.Cancel(jobID); err != nil {
		return err
	}

	h.logger.Info("batch cancellation accepted", "job_id", jobID)
	return c.JSON(http.StatusAccepted, map[string]string{
		"job_id": jobID,
		"status": "cancelling",
	})
}
