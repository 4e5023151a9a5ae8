package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/coinboard/coinboard/internal/api/middleware"
	"github.com/coinboard/coinboard/internal/core/domain"
	"github.com/coinboard/coinboard/internal/core/ports"
)

// stubPool implements ports.PoolService with overridable hooks.
type stubPool struct {
	mintFn   func(ctx context.Context, caller string, amount int64) (*ports.MintResult, error)
	redeemFn func(ctx context.Context, token, claimant string) (int64, error)
	lookupFn func(ctx context.Context, token string) (int64, error)
}

func (s *stubPool) Mint(ctx context.Context, caller string, amount int64) (*ports.MintResult, error) {
	return s.mintFn(ctx, caller, amount)
}
func (s *stubPool) Redeem(ctx context.Context, token, claimant string) (int64, error) {
	return s.redeemFn(ctx, token, claimant)
}
func (s *stubPool) Lookup(ctx context.Context, token string) (int64, error) {
	return s.lookupFn(ctx, token)
}
func (s *stubPool) Outstanding(context.Context) ([]ports.GrantView, error) { return nil, nil }

func TestPoolHandler_Generate(t *testing.T) {
	var gotCaller string
	var gotAmount int64
	pool := &stubPool{
		mintFn: func(_ context.Context, caller string, amount int64) (*ports.MintResult, error) {
			gotCaller, gotAmount = caller, amount
			return &ports.MintResult{Token: "t1", Amount: amount}, nil
		},
	}
	h := NewPoolHandler(pool, &stubDirectory{}, stubSessions{}, time.Hour)

	c, rec := postForm(t, "/generate", "amount=50")
	c.Set("username", "minter")

	if err := h.Generate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotCaller != "minter" || gotAmount != 50 {
		t.Fatalf("unexpected mint call: caller=%q amount=%d", gotCaller, gotAmount)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestPoolHandler_Generate_NonIntegerAmount(t *testing.T) {
	h := NewPoolHandler(&stubPool{}, &stubDirectory{}, stubSessions{}, time.Hour)

	c, _ := postForm(t, "/generate", "amount=lots")
	c.Set("username", "minter")

	if err := h.Generate(c); !errors.Is(err, domain.ErrBadInput) {
		t.Fatalf("expected ErrBadInput, got %v", err)
	}
}

func TestPoolHandler_Attribute_LoggedInRedeems(t *testing.T) {
	var gotToken, gotClaimant string
	pool := &stubPool{
		lookupFn: func(context.Context, string) (int64, error) { return 50, nil },
		redeemFn: func(_ context.Context, token, claimant string) (int64, error) {
			gotToken, gotClaimant = token, claimant
			return 50, nil
		},
	}
	h := NewPoolHandler(pool, &stubDirectory{}, stubSessions{}, time.Hour)

	c, rec := postForm(t, "/attribute/t1", "username=alice")
	c.SetParamNames("token")
	c.SetParamValues("t1")
	c.Set("username", "alice")

	if err := h.Attribute(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotToken != "t1" || gotClaimant != "alice" {
		t.Fatalf("unexpected redeem call: token=%q claimant=%q", gotToken, gotClaimant)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestPoolHandler_Attribute_AnonymousLogsInFirst(t *testing.T) {
	pool := &stubPool{
		lookupFn: func(context.Context, string) (int64, error) { return 50, nil },
		redeemFn: func(context.Context, string, string) (int64, error) {
			t.Fatalf("redeem must not run for anonymous callers")
			return 0, nil
		},
	}
	directory := &stubDirectory{
		loginFn: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{Username: username}, nil
		},
	}
	h := NewPoolHandler(pool, directory, stubSessions{}, time.Hour)

	c, rec := postForm(t, "/attribute/t1", "username=alice")
	c.SetParamNames("token")
	c.SetParamValues("t1")

	if err := h.Attribute(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// Sent back to the confirmation page with a fresh session.
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/attribute/t1" {
		t.Fatalf("expected redirect back to grant, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	var found bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName && ck.Value == "session-alice" {
			found = true
		}
	}
	if !found {
		t.Fatalf("session cookie not set")
	}
}

func TestPoolHandler_Attribute_InvalidToken(t *testing.T) {
	pool := &stubPool{
		lookupFn: func(context.Context, string) (int64, error) {
			return 0, domain.ErrInvalidToken
		},
	}
	h := NewPoolHandler(pool, &stubDirectory{}, stubSessions{}, time.Hour)

	c, _ := postForm(t, "/attribute/gone", "username=alice")
	c.SetParamNames("token")
	c.SetParamValues("gone")
	c.Set("username", "alice")

	if err := h.Attribute(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
