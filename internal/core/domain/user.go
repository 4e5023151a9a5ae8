package domain

import (
	"errors"
	"time"
)

const (
	// RoleCEO is the single privileged role. Authorization checks compare
	// against this exact string; there is no role hierarchy.
	RoleCEO = "CEO"
	// RoleRepresentative carries elevated minting rights in the UI but no
	// directory-editing rights.
	RoleRepresentative = "Representative"
	// RoleDefault is assigned to every newly registered user.
	RoleDefault = "Loyal Supporter"
)

var (
	ErrUserExists       = errors.New("user already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrSelfModification = errors.New("cannot change your own role")
	ErrSelfRemoval      = errors.New("cannot remove yourself")
	ErrBadInput         = errors.New("bad input")
)

// User models a named account in the directory.
type User struct {
	Username  string    `json:"username"`
	Balance   int64     `json:"balance"`
	Role      string    `json:"role"`
	QRCode    []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Elevated reports whether the user may mint under the "elevated" policy.
func (u *User) Elevated() bool {
	return u.Role == RoleCEO || u.Role == RoleRepresentative
}

// IsCEO reports whether the user holds the privileged role.
func (u *User) IsCEO() bool {
	return u.Role == RoleCEO
}

// BalanceMode selects how EditBalance applies its value.
type BalanceMode string

const (
	BalanceSet BalanceMode = "set"
	BalanceAdd BalanceMode = "add"
)

// IsValid checks if the balance mode is a known one.
func (m BalanceMode) IsValid() bool {
	return m == BalanceSet || m == BalanceAdd
}
