package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/coinboard/coinboard/internal/core/domain"
)

// currentUsername returns the session identity injected by the Session
// middleware, or "" for anonymous requests.
func currentUsername(c echo.Context) string {
	username, _ := c.Get("username").(string)
	return username
}

// currentUser returns the live user record injected by the Session
// middleware, or nil for anonymous requests.
func currentUser(c echo.Context) *domain.User {
	user, _ := c.Get("user").(*domain.User)
	return user
}
