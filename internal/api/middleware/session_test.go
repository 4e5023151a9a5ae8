package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/coinboard/coinboard/internal/core/domain"
	"github.com/coinboard/coinboard/internal/core/ports"
)

type stubSessions struct {
	parseFn func(token string) (string, error)
}

func (s *stubSessions) Issue(username string) (string, error) { return "token-" + username, nil }
func (s *stubSessions) Parse(token string) (string, error)    { return s.parseFn(token) }

// stubDirectory implements ports.DirectoryService; only Get matters here.
type stubDirectory struct {
	getFn func(username string) (*domain.User, error)
}

func (s *stubDirectory) Register(context.Context, string) (*domain.User, error) { return nil, nil }
func (s *stubDirectory) Login(context.Context, string) (*domain.User, error)    { return nil, nil }
func (s *stubDirectory) AddUser(context.Context, string, string) (*domain.User, error) {
	return nil, nil
}
func (s *stubDirectory) RemoveUser(context.Context, string, string) error         { return nil }
func (s *stubDirectory) AssignRole(context.Context, string, string, string) error { return nil }
func (s *stubDirectory) EditBalance(context.Context, string, string, int64, domain.BalanceMode) error {
	return nil
}
func (s *stubDirectory) Credit(context.Context, string, int64) error { return nil }
func (s *stubDirectory) Get(_ context.Context, username string) (*domain.User, error) {
	return s.getFn(username)
}
func (s *stubDirectory) Leaderboard(context.Context) ([]ports.LeaderboardEntry, error) {
	return nil, nil
}

func runSession(t *testing.T, cookie *http.Cookie, sessions ports.SessionManager, directory ports.DirectoryService) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(sessions, directory)
	if err := mw(func(c echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return c
}

func TestSession_ValidCookie(t *testing.T) {
	sessions := &stubSessions{parseFn: func(token string) (string, error) {
		if token != "good" {
			t.Fatalf("unexpected token: %s", token)
		}
		return "alice", nil
	}}
	directory := &stubDirectory{getFn: func(username string) (*domain.User, error) {
		return &domain.User{Username: username, Role: domain.RoleDefault}, nil
	}}

	c := runSession(t, &http.Cookie{Name: CookieName, Value: "good"}, sessions, directory)

	if got, _ := c.Get("username").(string); got != "alice" {
		t.Fatalf("expected username alice, got %q", got)
	}
	if user, _ := c.Get("user").(*domain.User); user == nil || user.Username != "alice" {
		t.Fatalf("user not injected: %+v", user)
	}
}

func TestSession_NoCookieProceedsAnonymously(t *testing.T) {
	c := runSession(t, nil, &stubSessions{parseFn: func(string) (string, error) {
		t.Fatalf("parse should not be called")
		return "", nil
	}}, &stubDirectory{})

	if got, _ := c.Get("username").(string); got != "" {
		t.Fatalf("expected anonymous request, got %q", got)
	}
}

func TestSession_InvalidTokenProceedsAnonymously(t *testing.T) {
	sessions := &stubSessions{parseFn: func(string) (string, error) {
		return "", errors.New("invalid session token")
	}}

	c := runSession(t, &http.Cookie{Name: CookieName, Value: "bad"}, sessions, &stubDirectory{})

	if got, _ := c.Get("username").(string); got != "" {
		t.Fatalf("expected anonymous request, got %q", got)
	}
}

func TestSession_RemovedUserProceedsAnonymously(t *testing.T) {
	sessions := &stubSessions{parseFn: func(string) (string, error) { return "alice", nil }}
	directory := &stubDirectory{getFn: func(string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}}

	c := runSession(t, &http.Cookie{Name: CookieName, Value: "good"}, sessions, directory)

	if got, _ := c.Get("username").(string); got != "" {
		t.Fatalf("expected anonymous request for removed user, got %q", got)
	}
}
