// ABOUTME: This file resolves the requester identity for every API request
// ABOUTME: Optional HS256 service tokens; the JWT subject overrides the header
package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"rank-estimator/config"
	apperrors "rank-estimator/utils/errors"
	"rank-estimator/utils/logger"
)

// DefaultRequesterID is the identity applied when a request carries none.
const DefaultRequesterID = "default"

// RequesterHeader names the plain identity header honored when token auth is
// disabled or the token carries no subject.
const RequesterHeader = "X-User-ID"

// RequesterIdentity resolves who is making the request and stores the
// identity in the request context. With auth disabled the X-User-ID header is
// trusted as-is; with auth enabled a valid Bearer token is required and its
// subject wins over the header.
func RequesterIdentity(cfg config.AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			requesterID := strings.TrimSpace(req.Header.Get(RequesterHeader))

			if cfg.Enabled {
				subject, err := verifyServiceToken(req.Header.Get("Authorization"), cfg.ServiceSecret)
				if err != nil {
					return apperrors.NewUnauthorizedContextError(
						"invalid or missing service token",
						"middleware", "auth", "verify_token",
						map[string]interface{}{"path": req.URL.Path})
				}
				if subject != "" {
					requesterID = subject
				}
			}

			if requesterID == "" {
				requesterID = DefaultRequesterID
			}

			ctx := logger.WithRequesterID(req.Context(), requesterID)
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}

// verifyServiceToken parses an HS256 Bearer token and returns its subject.
func verifyServiceToken(header, secret string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", fmt.Errorf("missing bearer token")
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, prefix),
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("token verification failed: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("token has no readable subject: %w", err)
	}
	return subject, nil
}
