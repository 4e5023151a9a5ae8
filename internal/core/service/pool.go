package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coinboard/coinboard/internal/api/metrics"
	"github.com/coinboard/coinboard/internal/core/domain"
	"github.com/coinboard/coinboard/internal/core/ports"
	"github.com/coinboard/coinboard/internal/pkg/config"
)

// Pool implements ports.PoolService: the lifecycle of single-use coin grants
// from mint to exactly-once redemption.
type Pool struct {
	grants    ports.GrantStore
	directory ports.DirectoryService
	queue     ports.RenderQueue
	baseURL   string
	policy    string
	logger    zerolog.Logger
}

// NewPool returns a Pool. policy is config.MintPolicyAny or
// config.MintPolicyElevated; unknown values behave like "any". queue may be
// nil in tests, which skips QR rendering.
func NewPool(grants ports.GrantStore, directory ports.DirectoryService, queue ports.RenderQueue, baseURL, policy string, logger zerolog.Logger) *Pool {
	return &Pool{
		grants:    grants,
		directory: directory,
		queue:     queue,
		baseURL:   baseURL,
		policy:    policy,
		logger:    logger,
	}
}

func (p *Pool) Mint(ctx context.Context, caller string, amount int64) (*ports.MintResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("mint: %w: amount must be positive", domain.ErrBadInput)
	}

	minter, err := p.directory.Get(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("mint: %w", domain.ErrUnauthorized)
	}
	if p.policy == config.MintPolicyElevated && !minter.Elevated() {
		return nil, fmt.Errorf("mint: %w", domain.ErrUnauthorized)
	}

	grant := &domain.Grant{
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	// UUID collisions are cryptographically negligible, but the store is
	// the authority on uniqueness over the live set.
	for {
		grant.Token = uuid.NewString()
		if err := p.grants.Put(grant); err == nil {
			break
		} else if !errors.Is(err, domain.ErrInvalidToken) {
			return nil, fmt.Errorf("mint: %w", err)
		}
	}

	redeemURL := p.baseURL + "/attribute/" + grant.Token
	if p.queue != nil {
		token := grant.Token
		p.queue.Enqueue(ports.RenderJob{
			Key:     token,
			Payload: redeemURL,
			Caption: fmt.Sprintf("%d COIN", amount),
			// The attach refuses grants that were redeemed while the
			// render was in flight, so the image never outlives the entry.
			Attach: func(png []byte) bool { return p.grants.AttachImage(token, png) },
		})
	}

	metrics.GrantsMintedTotal.Inc()
	metrics.OutstandingGrants.Set(float64(p.grants.Len()))
	p.logger.Info().
		Str("token", grant.Token).
		Int64("amount", amount).
		Str("minter", caller).
		Msg("grant minted")

	return &ports.MintResult{Token: grant.Token, Amount: amount, RedeemURL: redeemURL}, nil
}

func (p *Pool) Redeem(ctx context.Context, token, claimant string) (int64, error) {
	// The claimant is verified before the token is consumed so a typo'd
	// username does not burn the grant.
	if _, err := p.directory.Get(ctx, claimant); err != nil {
		metrics.RedeemErrorsTotal.WithLabelValues("claimant_not_found").Inc()
		return 0, fmt.Errorf("redeem: %w", err)
	}

	// Remove is the single atomic claim point: concurrent duplicate
	// requests for the same token race on it and exactly one wins.
	grant, ok := p.grants.Remove(token)
	if !ok {
		metrics.RedeemErrorsTotal.WithLabelValues("invalid_token").Inc()
		return 0, fmt.Errorf("redeem: %w", domain.ErrInvalidToken)
	}

	if err := p.directory.Credit(ctx, claimant, grant.Amount); err != nil {
		// The token is already consumed; the claimant vanished between the
		// existence check and the credit. The grant is gone either way.
		p.logger.Error().
			Err(err).
			Str("token", token).
			Str("claimant", claimant).
			Msg("credit failed after token was consumed")
		return 0, fmt.Errorf("redeem: %w", err)
	}

	metrics.GrantsRedeemedTotal.Inc()
	metrics.OutstandingGrants.Set(float64(p.grants.Len()))
	p.logger.Info().
		Str("token", token).
		Str("claimant", claimant).
		Int64("amount", grant.Amount).
		Msg("grant redeemed")

	return grant.Amount, nil
}

func (p *Pool) Lookup(ctx context.Context, token string) (int64, error) {
	grant, ok := p.grants.Get(token)
	if !ok {
		return 0, fmt.Errorf("lookup: %w", domain.ErrInvalidToken)
	}
	return grant.Amount, nil
}

func (p *Pool) Outstanding(ctx context.Context) ([]ports.GrantView, error) {
	grants := p.grants.List()
	views := make([]ports.GrantView, 0, len(grants))
	for _, g := range grants {
		views = append(views, ports.GrantView{
			Token:     g.Token,
			Amount:    g.Amount,
			Image:     g.Image,
			CreatedAt: g.CreatedAt,
		})
	}
	return views, nil
}
