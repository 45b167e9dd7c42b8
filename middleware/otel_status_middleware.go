// ABOUTME: This file finalizes request spans after the handler chain runs
// ABOUTME: Response codes map onto span status per the OTel HTTP conventions
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// OTelStatusMiddleware records the response status on the active span. It
// runs inside otelecho.Middleware, which owns the span lifecycle; per the
// OTel HTTP conventions 4xx responses leave the span status Unset and only
// 5xx marks it failed.
func OTelStatusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			finishSpan(c, err)
			return err
		}
	}
}

func finishSpan(c echo.Context, handlerErr error) {
	span := trace.SpanFromContext(c.Request().Context())
	if !span.SpanContext().IsValid() {
		return
	}

	status := c.Response().Status
	span.SetAttributes(semconv.HTTPResponseStatusCode(status))

	if status < http.StatusInternalServerError {
		return
	}
	span.SetStatus(codes.Error, http.StatusText(status))
	if handlerErr != nil {
		span.RecordError(handlerErr)
	}
}
