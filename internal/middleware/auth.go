// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/music-catalog/internal/auth"
	"codeberg.org/oliverandrich/music-catalog/internal/i18n"
	"codeberg.org/oliverandrich/music-catalog/internal/models"
	authsvc "codeberg.org/oliverandrich/music-catalog/internal/services/auth"
)

// DefaultTokenHeader is the header carrying the auth token.
const DefaultTokenHeader = "x-auth-token"

// TokenVerifier validates a token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// RequireToken rejects requests without a valid token in header.
// "Authorization: Bearer <token>" is accepted when header is absent.
func RequireToken(verifier TokenVerifier, header string) echo.MiddlewareFunc {
	if header == "" {
		header = DefaultTokenHeader
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := req.Context()

			token := extractToken(req, header)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": i18n.T(ctx, "auth_missing_token"),
				})
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, authsvc.ErrExpiredToken) {
					reason = "expired_token"
				}
				slog.Warn("auth_rejected", "reason", reason, "path", req.URL.Path, "ip", c.RealIP())
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": i18n.T(ctx, "auth_invalid_token"),
				})
			}

			c.SetRequest(req.WithContext(auth.WithIdentity(ctx, identity)))
			return next(c)
		}
	}
}

func extractToken(r *http.Request, header string) string {
	if token := strings.TrimSpace(r.Header.Get(header)); token != "" {
		return token
	}
	authz := r.Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(authz, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}
