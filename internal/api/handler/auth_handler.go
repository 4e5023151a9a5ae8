package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coinboard/coinboard/internal/core/ports"
)

// AuthHandler serves account registration, login, and logout.
type AuthHandler struct {
	directory  ports.DirectoryService
	pool       ports.PoolService
	sessions   ports.SessionManager
	sessionTTL time.Duration
}

func NewAuthHandler(directory ports.DirectoryService, pool ports.PoolService, sessions ports.SessionManager, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{directory: directory, pool: pool, sessions: sessions, sessionTTL: sessionTTL}
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", nil)
}

// Register handles POST /register — creates the account and establishes the
// caller's session as the new user.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Success      302
// @Failure      400  {string}  string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form usernameForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	user, err := h.directory.Register(c.Request().Context(), form.Username)
	if err != nil {
		return err
	}

	if err := establishSession(c, h.sessions, h.sessionTTL, user.Username); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// LoginPage handles GET /login — the login form plus the public leaderboard
// and pool, mirroring what a visitor sees before signing in.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	board, err := h.directory.Leaderboard(c.Request().Context())
	if err != nil {
		return err
	}
	grants, err := h.pool.Outstanding(c.Request().Context())
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "login.html", loginPage{
		Leaderboard: toLeaderboardRows(board),
		Pool:        toGrantRows(grants),
	})
}

// Login handles POST /login.
//
// @Summary      Log in as an existing user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Success      302
// @Failure      400  {string}  string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form usernameForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	user, err := h.directory.Login(c.Request().Context(), form.Username)
	if err != nil {
		return err
	}

	if err := establishSession(c, h.sessions, h.sessionTTL, user.Username); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles GET /logout — clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	clearSession(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}
