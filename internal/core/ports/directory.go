package ports

import (
	"context"

	"github.com/coinboard/coinboard/internal/core/domain"
)

// LeaderboardEntry is one row of the balance-descending ranking.
type LeaderboardEntry struct {
	Rank     int
	Username string
	Balance  int64
	Role     string
}

// DirectoryService defines use-case operations on the user directory.
// CEO-only operations take the caller's username and enforce the role check
// themselves so the policy lives in exactly one place.
type DirectoryService interface {
	// Register creates a new account with zero balance and the default
	// role. The caller is expected to establish the session afterwards.
	Register(ctx context.Context, username string) (*domain.User, error)
	// Login resolves an existing account and schedules the user's personal
	// QR code for (re)rendering.
	Login(ctx context.Context, username string) (*domain.User, error)
	// AddUser creates an account on someone else's behalf. CEO only.
	AddUser(ctx context.Context, caller, username string) (*domain.User, error)
	// RemoveUser deletes an account. CEO only; self-removal is refused.
	RemoveUser(ctx context.Context, caller, target string) error
	// AssignRole sets a user's role to an arbitrary string. CEO only;
	// self-modification is refused even for the CEO.
	AssignRole(ctx context.Context, caller, target, role string) error
	// EditBalance overwrites ("set") or increments ("add") a balance.
	// CEO only.
	EditBalance(ctx context.Context, caller, target string, value int64, mode domain.BalanceMode) error
	// Credit adds a positive amount to a balance. Used by grant redemption.
	Credit(ctx context.Context, username string, amount int64) error
	// Get returns a single user.
	Get(ctx context.Context, username string) (*domain.User, error)
	// Leaderboard returns all users ordered by balance descending, ties
	// broken by insertion order.
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}

// UserStore defines the in-memory persistence operations for users. All
// methods are atomic with respect to each other; none of them block.
type UserStore interface {
	// Create inserts the user, failing with domain.ErrUserExists when the
	// username is taken.
	Create(user *domain.User) error
	Get(username string) (*domain.User, bool)
	Delete(username string) bool
	SetRole(username, role string) bool
	SetBalance(username string, value int64) bool
	// AdjustBalance adds delta (which may be negative) and returns the new
	// balance. When clamp is true the result is floored at zero.
	AdjustBalance(username string, delta int64, clamp bool) (int64, bool)
	// AttachQR stores the rendered personal QR code, refusing unknown users.
	AttachQR(username string, png []byte) bool
	// List returns a snapshot of all users in insertion order.
	List() []*domain.User
	Len() int
}
