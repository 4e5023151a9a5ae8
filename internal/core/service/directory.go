package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/coinboard/coinboard/internal/api/metrics"
	"github.com/coinboard/coinboard/internal/core/domain"
	"github.com/coinboard/coinboard/internal/core/ports"
)

// Directory implements ports.DirectoryService over an in-memory user store.
type Directory struct {
	users  ports.UserStore
	queue  ports.RenderQueue
	clamp  bool
	logger zerolog.Logger
}

// NewDirectory returns a Directory. queue may be nil in tests; personal QR
// rendering is then skipped.
func NewDirectory(users ports.UserStore, queue ports.RenderQueue, clampBalances bool, logger zerolog.Logger) *Directory {
	return &Directory{users: users, queue: queue, clamp: clampBalances, logger: logger}
}

func (d *Directory) Register(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("register: %w: empty username", domain.ErrBadInput)
	}

	user := &domain.User{
		Username:  username,
		Balance:   0,
		Role:      domain.RoleDefault,
		CreatedAt: time.Now().UTC(),
	}
	if err := d.users.Create(user); err != nil {
		return nil, fmt.Errorf("register %q: %w", username, err)
	}

	metrics.UsersRegisteredTotal.WithLabelValues("register").Inc()
	d.logger.Info().Str("username", username).Msg("user registered")
	return user, nil
}

func (d *Directory) Login(ctx context.Context, username string) (*domain.User, error) {
	user, ok := d.users.Get(username)
	if !ok {
		return nil, fmt.Errorf("login %q: %w", username, domain.ErrUserNotFound)
	}

	// The personal QR code encodes the bare username; it is regenerated on
	// every login so role renames and store restarts heal themselves.
	if d.queue != nil {
		d.queue.Enqueue(ports.RenderJob{
			Key:     username,
			Payload: username,
			Caption: username,
			Attach:  func(png []byte) bool { return d.users.AttachQR(username, png) },
		})
	}

	d.logger.Info().Str("username", username).Msg("user logged in")
	return user, nil
}

func (d *Directory) AddUser(ctx context.Context, caller, username string) (*domain.User, error) {
	if err := d.requireCEO(caller); err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	if username == "" {
		return nil, fmt.Errorf("add user: %w: empty username", domain.ErrBadInput)
	}

	user := &domain.User{
		Username:  username,
		Balance:   0,
		Role:      domain.RoleDefault,
		CreatedAt: time.Now().UTC(),
	}
	if err := d.users.Create(user); err != nil {
		return nil, fmt.Errorf("add user %q: %w", username, err)
	}

	metrics.UsersRegisteredTotal.WithLabelValues("add_user").Inc()
	d.logger.Info().Str("username", username).Str("caller", caller).Msg("user added")
	return user, nil
}

func (d *Directory) RemoveUser(ctx context.Context, caller, target string) error {
	if err := d.requireCEO(caller); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	if target == caller {
		return fmt.Errorf("remove user: %w", domain.ErrSelfRemoval)
	}
	if !d.users.Delete(target) {
		return fmt.Errorf("remove user %q: %w", target, domain.ErrUserNotFound)
	}

	d.logger.Info().Str("username", target).Str("caller", caller).Msg("user removed")
	return nil
}

func (d *Directory) AssignRole(ctx context.Context, caller, target, role string) error {
	if err := d.requireCEO(caller); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	// Nobody edits their own role, the CEO included.
	if target == caller {
		return fmt.Errorf("assign role: %w", domain.ErrSelfModification)
	}
	if !d.users.SetRole(target, role) {
		return fmt.Errorf("assign role %q: %w", target, domain.ErrUserNotFound)
	}

	d.logger.Info().Str("username", target).Str("role", role).Str("caller", caller).Msg("role assigned")
	return nil
}

func (d *Directory) EditBalance(ctx context.Context, caller, target string, value int64, mode domain.BalanceMode) error {
	if err := d.requireCEO(caller); err != nil {
		return fmt.Errorf("edit balance: %w", err)
	}
	if !mode.IsValid() {
		return fmt.Errorf("edit balance: %w: unknown mode %q", domain.ErrBadInput, mode)
	}

	var (
		ok      bool
		updated int64
	)
	switch mode {
	case domain.BalanceSet:
		updated = value
		ok = d.users.SetBalance(target, value)
	case domain.BalanceAdd:
		updated, ok = d.users.AdjustBalance(target, value, d.clamp)
	}
	if !ok {
		return fmt.Errorf("edit balance %q: %w", target, domain.ErrUserNotFound)
	}

	d.logger.Info().
		Str("username", target).
		Str("mode", string(mode)).
		Int64("value", value).
		Int64("balance", updated).
		Str("caller", caller).
		Msg("balance edited")
	return nil
}

func (d *Directory) Credit(ctx context.Context, username string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit: %w: non-positive amount %d", domain.ErrBadInput, amount)
	}
	// Redemption credits are never clamped; they only add.
	balance, ok := d.users.AdjustBalance(username, amount, false)
	if !ok {
		return fmt.Errorf("credit %q: %w", username, domain.ErrUserNotFound)
	}

	d.logger.Info().Str("username", username).Int64("amount", amount).Int64("balance", balance).Msg("balance credited")
	return nil
}

func (d *Directory) Get(ctx context.Context, username string) (*domain.User, error) {
	user, ok := d.users.Get(username)
	if !ok {
		return nil, fmt.Errorf("get user %q: %w", username, domain.ErrUserNotFound)
	}
	return user, nil
}

// Leaderboard sorts a snapshot of the directory by balance descending.
// sort.SliceStable over the insertion-ordered snapshot keeps ties
// deterministic across calls.
func (d *Directory) Leaderboard(ctx context.Context) ([]ports.LeaderboardEntry, error) {
	users := d.users.List()
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Balance > users[j].Balance
	})

	entries := make([]ports.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, ports.LeaderboardEntry{
			Rank:     i + 1,
			Username: u.Username,
			Balance:  u.Balance,
			Role:     u.Role,
		})
	}
	return entries, nil
}

// requireCEO enforces the single privileged role: the caller must exist and
// hold exactly the "CEO" role.
func (d *Directory) requireCEO(caller string) error {
	if caller == "" {
		return domain.ErrUnauthorized
	}
	user, ok := d.users.Get(caller)
	if !ok || !user.IsCEO() {
		return domain.ErrUnauthorized
	}
	return nil
}
