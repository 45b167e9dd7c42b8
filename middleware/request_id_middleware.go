// ABOUTME: This file tags every request with an ID for log correlation
// ABOUTME: Inbound gateway-assigned IDs are kept, otherwise a UUID is minted
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rank-estimator/utils/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware propagates a request ID through the context so every
// log line of a request carries it. An ID already present on the request is
// trusted, and the ID is echoed back on the response either way.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
			c.Response().Header().Set(requestIDHeader, id)

			return next(c)
		}
	}
}
