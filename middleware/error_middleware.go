// ABOUTME: Centralized error handling middleware for Echo framework
// ABOUTME: Converts AppContextError to secure HTTP responses, hides internal details
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"rank-estimator/ratelimit"
	apperrors "rank-estimator/utils/errors"
	"rank-estimator/utils/logger"
)

// CustomHTTPErrorHandler creates the centralized HTTP error handler for Echo.
//
// Error handling priority:
// 1. *ratelimit.LimitExceeded - mapped to a retryable 429 with the reset time
// 2. AppContextError - uses ToSecureHTTPResponse() for consistent format
// 3. echo.HTTPError - preserves Echo's error format
// 4. Unknown errors - generic 500 response that hides internal details
func CustomHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ctx := c.Request().Context()
		requestID := ""
		if rid := ctx.Value(logger.RequestIDKey); rid != nil {
			if s, ok := rid.(string); ok {
				requestID = s
			}
		}

		var response apperrors.SecureHTTPResponse
		var status int

		var denial *ratelimit.LimitExceeded
		var appErr *apperrors.AppContextError
		var httpErr *echo.HTTPError

		switch {
		case errors.As(err, &denial):
			status = http.StatusTooManyRequests
			c.Response().Header().Set("Retry-After", denial.ResetAt.Format(http.TimeFormat))
			response = apperrors.SecureHTTPResponse{
				Error: apperrors.SecureErrorDetail{
					Code:      "RATE_LIMIT_ERROR",
					Message:   "Too many requests. Please wait before trying again.",
					Retryable: true,
				},
			}

			log.Warn("rate limit denial surfaced",
				"request_id", requestID,
				"source", denial.Source,
				"reset_at", denial.ResetAt)

		case errors.As(err, &appErr):
			status = appErr.HTTPStatusCode()
			response = appErr.ToSecureHTTPResponse()

			log.Error("application error",
				"request_id", requestID,
				"error_id", appErr.ErrorID,
				"code", appErr.Code,
				"message", appErr.Message,
				"layer", appErr.Layer,
				"component", appErr.Component,
				"operation", appErr.Operation,
				"cause", appErr.Cause,
				"context", appErr.Context,
			)

		case errors.As(err, &httpErr):
			status = httpErr.Code
			msg := "An error occurred"
			if m, ok := httpErr.Message.(string); ok {
				msg = m
			}

			safeMsg := msg
			if status >= 500 {
				safeMsg = "An unexpected error occurred. Please try again later."
			}

			response = apperrors.SecureHTTPResponse{
				Error: apperrors.SecureErrorDetail{
					Code:      "HTTP_ERROR",
					Message:   safeMsg,
					Retryable: apperrors.IsRetryableHTTPStatus(status),
				},
			}

			log.Warn("HTTP error",
				"request_id", requestID,
				"status", status,
				"message", msg,
			)

		default:
			status = http.StatusInternalServerError
			response = apperrors.SecureHTTPResponse{
				Error: apperrors.SecureErrorDetail{
					Code:      "INTERNAL_ERROR",
					Message:   "An unexpected error occurred. Please try again later.",
					Retryable: false,
				},
			}

			log.Error("unhandled error",
				"request_id", requestID,
				"error", err.Error(),
			)
		}

		if err := c.JSON(status, response); err != nil {
			log.Error("failed to send error response",
				"request_id", requestID,
				"error", err,
			)
		}
	}
}
