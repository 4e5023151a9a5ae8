package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coinboard/coinboard/internal/core/domain"
	"github.com/coinboard/coinboard/internal/core/ports"
)

// DirectoryHandler serves the CEO-only account management routes. All routes
// are additionally gated by the RequireCEO middleware; the service re-checks
// the caller's role on every call.
type DirectoryHandler struct {
	directory ports.DirectoryService
}

func NewDirectoryHandler(directory ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// AddUser handles POST /add-user.
//
// @Summary      Create an account on someone's behalf
// @Tags         directory
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Success      302
// @Failure      400  {string}  string
// @Failure      403  {string}  string
// @Router       /add-user [post]
func (h *DirectoryHandler) AddUser(c echo.Context) error {
	var form usernameForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	if _, err := h.directory.AddUser(c.Request().Context(), currentUsername(c), form.Username); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// RemoveUser handles POST /remove-user.
//
// @Summary      Delete an account
// @Tags         directory
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Success      302
// @Failure      400  {string}  string
// @Failure      403  {string}  string
// @Router       /remove-user [post]
func (h *DirectoryHandler) RemoveUser(c echo.Context) error {
	var form usernameForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	if err := h.directory.RemoveUser(c.Request().Context(), currentUsername(c), form.Username); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// AssignRole handles POST /assign-role.
//
// @Summary      Change a user's role
// @Tags         directory
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Target username"
// @Param        role      formData  string  true  "New role"
// @Success      302
// @Failure      400  {string}  string
// @Failure      403  {string}  string
// @Router       /assign-role [post]
func (h *DirectoryHandler) AssignRole(c echo.Context) error {
	var form assignRoleForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	if err := h.directory.AssignRole(c.Request().Context(), currentUsername(c), form.Username, form.Role); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditBalance handles POST /edit-balance.
//
// @Summary      Set or add to a user's balance
// @Tags         directory
// @Accept       x-www-form-urlencoded
// @Param        username        formData  string  true   "Target username"
// @Param        new_balance     formData  int     true   "Value"
// @Param        operation_type  formData  string  false  "set or add (default set)"
// @Success      302
// @Failure      400  {string}  string
// @Failure      403  {string}  string
// @Router       /edit-balance [post]
func (h *DirectoryHandler) EditBalance(c echo.Context) error {
	var form editBalanceForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	value, err := parseAmount("new_balance", form.Value)
	if err != nil {
		return err
	}

	mode := domain.BalanceMode(form.Mode)
	if form.Mode == "" {
		mode = domain.BalanceSet
	}

	if err := h.directory.EditBalance(c.Request().Context(), currentUsername(c), form.Username, value, mode); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
