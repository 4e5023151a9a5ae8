package domain

import (
	"errors"
	"time"
)

// ErrInvalidToken covers both tokens that never existed and tokens already
// redeemed: consumed grants are deleted, so the two cases are
// indistinguishable on purpose.
var ErrInvalidToken = errors.New("invalid or expired coin token")

// Grant is a minted, single-use token representing a claimable coin amount.
// The rendered QR image lives on the grant itself so the pool entry and its
// image can never drift apart.
//
// Lifecycle: minted -> (redeemed exactly once) -> deleted. There is no other
// transition; any access to a deleted grant yields ErrInvalidToken.
type Grant struct {
	Token     string    `json:"token"`
	Amount    int64     `json:"amount"`
	Image     []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
