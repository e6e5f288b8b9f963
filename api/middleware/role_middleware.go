package middleware

import (
	"net/http"

	"learnbrightly/internal/entity"

	"github.com/labstack/echo/v4"
)

func RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, ok := AccountFromContext(c)
			if !ok || account.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
