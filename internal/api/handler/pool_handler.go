package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coinboard/coinboard/internal/core/ports"
)

// PoolHandler serves grant minting and redemption.
type PoolHandler struct {
	pool       ports.PoolService
	directory  ports.DirectoryService
	sessions   ports.SessionManager
	sessionTTL time.Duration
}

func NewPoolHandler(pool ports.PoolService, directory ports.DirectoryService, sessions ports.SessionManager, sessionTTL time.Duration) *PoolHandler {
	return &PoolHandler{pool: pool, directory: directory, sessions: sessions, sessionTTL: sessionTTL}
}

// Generate handles POST /generate — mints a new grant.
//
// @Summary      Mint a coin grant
// @Tags         pool
// @Accept       x-www-form-urlencoded
// @Param        amount  formData  int  true  "Coin amount"
// @Success      302
// @Failure      400  {string}  string
// @Failure      403  {string}  string
// @Router       /generate [post]
func (h *PoolHandler) Generate(c echo.Context) error {
	var form generateForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	amount, err := parseAmount("amount", form.Amount)
	if err != nil {
		return err
	}

	if _, err := h.pool.Mint(c.Request().Context(), currentUsername(c), amount); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// AttributePage handles GET /attribute/:token — the redemption confirmation
// page. Open to anonymous visitors so a scanned code can prompt a login.
func (h *PoolHandler) AttributePage(c echo.Context) error {
	token := c.Param("token")

	amount, err := h.pool.Lookup(c.Request().Context(), token)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "attribute.html", attributePage{
		Token:    token,
		Amount:   amount,
		LoggedIn: currentUsername(c) != "",
		Username: currentUsername(c),
	})
}

// Attribute handles POST /attribute/:token.
//
// A logged-in caller redeems the grant for the submitted username. An
// anonymous caller naming an existing user is first logged in as that user
// and sent back to the confirmation page, so a scanned code is a two-step
// claim for visitors without a session.
//
// @Summary      Redeem a coin grant
// @Tags         pool
// @Accept       x-www-form-urlencoded
// @Param        token     path      string  true  "Grant token"
// @Param        username  formData  string  true  "Claimant username"
// @Success      302
// @Failure      400  {string}  string
// @Router       /attribute/{token} [post]
func (h *PoolHandler) Attribute(c echo.Context) error {
	token := c.Param("token")

	// Surface InvalidToken before anything else, matching the GET view.
	if _, err := h.pool.Lookup(c.Request().Context(), token); err != nil {
		return err
	}

	var form usernameForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	if currentUsername(c) == "" {
		if _, err := h.directory.Login(c.Request().Context(), form.Username); err != nil {
			return err
		}
		if err := establishSession(c, h.sessions, h.sessionTTL, form.Username); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/attribute/"+token)
	}

	if _, err := h.pool.Redeem(c.Request().Context(), token, form.Username); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
