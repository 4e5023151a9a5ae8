package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coinboard/coinboard/internal/core/ports"
)

// PagesHandler serves the read-mostly HTML pages.
type PagesHandler struct {
	directory ports.DirectoryService
	pool      ports.PoolService
}

func NewPagesHandler(directory ports.DirectoryService, pool ports.PoolService) *PagesHandler {
	return &PagesHandler{directory: directory, pool: pool}
}

// Dashboard handles GET / — leaderboard, outstanding grants, the mint form
// for elevated roles, and the admin forms for the CEO. Requires a session;
// RequireUser redirects anonymous visitors to /login.
func (h *PagesHandler) Dashboard(c echo.Context) error {
	user := currentUser(c)

	board, err := h.directory.Leaderboard(c.Request().Context())
	if err != nil {
		return err
	}
	grants, err := h.pool.Outstanding(c.Request().Context())
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "index.html", dashboardPage{
		Username:    user.Username,
		Role:        user.Role,
		QRCode:      user.QRCode,
		CanGenerate: user.Elevated(),
		IsCEO:       user.IsCEO(),
		Leaderboard: toLeaderboardRows(board),
		Pool:        toGrantRows(grants),
	})
}

// Progress handles GET /progress — the read-only leaderboard and pool view,
// open to everyone.
func (h *PagesHandler) Progress(c echo.Context) error {
	board, err := h.directory.Leaderboard(c.Request().Context())
	if err != nil {
		return err
	}
	grants, err := h.pool.Outstanding(c.Request().Context())
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "progress.html", progressPage{
		Leaderboard: toLeaderboardRows(board),
		Pool:        toGrantRows(grants),
	})
}
