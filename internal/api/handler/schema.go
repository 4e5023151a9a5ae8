package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coinboard/coinboard/internal/core/domain"
	"github.com/coinboard/coinboard/internal/core/ports"
)

// --- Form types ---
//
// Field names match the HTML form inputs, which in turn keep the historical
// names (new_balance, operation_type) so old bookmarks and scripts keep
// working.

type usernameForm struct {
	Username string `form:"username" validate:"required"`
}

type assignRoleForm struct {
	Username string `form:"username" validate:"required"`
	Role     string `form:"role"     validate:"required"`
}

type editBalanceForm struct {
	Username string `form:"username"       validate:"required"`
	Value    string `form:"new_balance"    validate:"required"`
	Mode     string `form:"operation_type" validate:"omitempty,oneof=set add"`
}

type generateForm struct {
	Amount string `form:"amount" validate:"required"`
}

// bindForm binds and validates a form, folding both failure modes into
// domain.ErrBadInput so the error handler renders a 400.
func bindForm(c echo.Context, form any) error {
	if err := c.Bind(form); err != nil {
		return fmt.Errorf("%w: invalid form payload", domain.ErrBadInput)
	}
	if err := c.Validate(form); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrBadInput, err.Error())
	}
	return nil
}

// parseAmount converts a form value into an integer, rejecting anything
// non-numeric with domain.ErrBadInput.
func parseAmount(field, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrBadInput, field)
	}
	return n, nil
}

// --- Page view models ---

type leaderboardRow struct {
	Rank     int
	Username string
	Balance  int64
	Role     string
}

type grantRow struct {
	Token  string
	Amount int64
	Image  []byte
}

type dashboardPage struct {
	Username    string
	Role        string
	QRCode      []byte
	CanGenerate bool
	IsCEO       bool
	Leaderboard []leaderboardRow
	Pool        []grantRow
}

type progressPage struct {
	Leaderboard []leaderboardRow
	Pool        []grantRow
}

type loginPage struct {
	Leaderboard []leaderboardRow
	Pool        []grantRow
}

type attributePage struct {
	Token    string
	Amount   int64
	LoggedIn bool
	Username string
}

func toLeaderboardRows(entries []ports.LeaderboardEntry) []leaderboardRow {
	rows := make([]leaderboardRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, leaderboardRow{
			Rank:     e.Rank,
			Username: e.Username,
			Balance:  e.Balance,
			Role:     e.Role,
		})
	}
	return rows
}

func toGrantRows(grants []ports.GrantView) []grantRow {
	rows := make([]grantRow, 0, len(grants))
	for _, g := range grants {
		rows = append(rows, grantRow{Token: g.Token, Amount: g.Amount, Image: g.Image})
	}
	return rows
}
