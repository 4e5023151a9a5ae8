package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coinboard/coinboard/internal/core/ports"
)

// CookieName is the session cookie holding the signed token.
const CookieName = "coinboard_session"

// Session resolves the current request to a user and injects it into context.
// The cookie carries only the username; the user record is looked up live so
// role changes and removals take effect immediately. Requests without a valid
// session proceed anonymously — gating is done by RequireUser / RequireCEO.
func Session(sessions ports.SessionManager, directory ports.DirectoryService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			username, err := sessions.Parse(cookie.Value)
			if err != nil {
				return next(c)
			}

			// A session for a since-removed user is treated as logged out.
			user, err := directory.Get(c.Request().Context(), username)
			if err != nil {
				return next(c)
			}

			c.Set("username", user.Username)
			c.Set("user", user)
			return next(c)
		}
	}
}

// RequireUser redirects anonymous requests to the login page.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, _ := c.Get("username").(string)
			if username == "" {
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}
