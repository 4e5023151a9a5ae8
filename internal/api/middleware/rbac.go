package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coinboard/coinboard/internal/core/domain"
)

// RequireCEO enforces the single privileged role on directory-editing routes.
// It runs after Session, which sets the live user; the services enforce the
// same check again so the policy never depends on middleware ordering alone.
func RequireCEO() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(*domain.User)
			if user == nil || !user.IsCEO() {
				return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to perform this action.")
			}
			return next(c)
		}
	}
}
