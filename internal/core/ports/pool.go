package ports

import (
	"context"
	"time"

	"github.com/coinboard/coinboard/internal/core/domain"
)

// MintResult is returned by the pool after minting a grant.
type MintResult struct {
	Token     string
	Amount    int64
	RedeemURL string
}

// GrantView is the read-only projection of an outstanding grant used by the
// dashboard and progress pages.
type GrantView struct {
	Token     string
	Amount    int64
	Image     []byte
	CreatedAt time.Time
}

// PoolService defines use-case operations on the coin pool.
type PoolService interface {
	// Mint creates a single-use grant for amount and schedules its QR code
	// for rendering. The caller must be authenticated; under the
	// "elevated" policy it must also be Representative or CEO.
	Mint(ctx context.Context, caller string, amount int64) (*MintResult, error)
	// Redeem consumes the token exactly once, crediting the claimant with
	// the stored amount. Absent tokens (never minted or already redeemed)
	// yield domain.ErrInvalidToken.
	Redeem(ctx context.Context, token, claimant string) (int64, error)
	// Lookup returns the amount of an outstanding grant without consuming it.
	Lookup(ctx context.Context, token string) (int64, error)
	// Outstanding returns all live grants in mint order.
	Outstanding(ctx context.Context) ([]GrantView, error)
}

// GrantStore defines the in-memory persistence operations for grants.
type GrantStore interface {
	// Put inserts the grant, failing with domain.ErrInvalidToken when the
	// token already exists (the pool retries with a fresh token).
	Put(grant *domain.Grant) error
	Get(token string) (*domain.Grant, bool)
	// Remove atomically deletes and returns the grant; the second return
	// is false when the token was absent. At most one caller ever
	// receives true for a given token.
	Remove(token string) (*domain.Grant, bool)
	// AttachImage stores the rendered QR code, refusing absent grants so
	// no image outlives its pool entry.
	AttachImage(token string, png []byte) bool
	// List returns a snapshot of all grants in mint order.
	List() []*domain.Grant
	Len() int
}
