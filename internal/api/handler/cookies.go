package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coinboard/coinboard/internal/api/middleware"
	"github.com/coinboard/coinboard/internal/core/ports"
)

// establishSession issues a session token for username and sets the cookie.
func establishSession(c echo.Context, sessions ports.SessionManager, ttl time.Duration, username string) error {
	token, err := sessions.Issue(username)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// clearSession expires the session cookie.
func clearSession(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
