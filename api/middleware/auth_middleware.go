package middleware

import (
	"context"
	"net/http"
	"strings"

	"learnbrightly/internal/entity"

	"github.com/labstack/echo/v4"
)

// TokenVerifier resolves a bearer token to the live account record. A valid
// signature alone is not enough: the verifier re-reads the database so a
// token for a deleted account is rejected.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.Account, error)
}

type AuthMiddleware struct {
	Verifier TokenVerifier
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.Verifier == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
		}
		account, err := m.Verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		SetAuthAccount(c, account)
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
