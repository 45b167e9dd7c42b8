// ABOUTME: Tests for request ID propagation
// ABOUTME: Covers minted UUIDs, trusted inbound IDs and the response echo
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rank-estimator/utils/logger"
)

func requestIDEcho() (*echo.Echo, *string) {
	e := echo.New()
	seen := new(string)
	e.Use(RequestIDMiddleware())
	e.GET("/ping", func(c echo.Context) error {
		if v, ok := c.Request().Context().Value(logger.RequestIDKey).(string); ok {
			*seen = v
		}
		return c.NoContent(http.StatusOK)
	})
	return e, seen
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("should mint a UUID when the request carries none", func(t *testing.T) {
		e, seen := requestIDEcho()

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		echoed := rec.Header().Get(requestIDHeader)
		require.NotEmpty(t, echoed)
		_, err := uuid.Parse(echoed)
		assert.NoError(t, err)
		assert.Equal(t, echoed, *seen)
	})

	t.Run("should keep a gateway-assigned ID", func(t *testing.T) {
		e, seen := requestIDEcho()

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(requestIDHeader, "gw-7f3a")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "gw-7f3a", rec.Header().Get(requestIDHeader))
		assert.Equal(t, "gw-7f3a", *seen)
	})

	t.Run("should mint a fresh ID per request", func(t *testing.T) {
		e, _ := requestIDEcho()

		ids := map[string]bool{}
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			ids[rec.Header().Get(requestIDHeader)] = true
		}

		assert.Len(t, ids, 3)
	})
}
