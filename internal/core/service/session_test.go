package service

import (
	"testing"
	"time"
)

func TestSessionManager_RoundTrip(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)

	token, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	username, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if username != "alice" {
		t.Fatalf("expected alice, got %s", username)
	}
}

func TestSessionManager_Parse_Garbage(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := m.Parse(token); err != ErrInvalidSession {
			t.Fatalf("token %q: expected ErrInvalidSession, got %v", token, err)
		}
	}
}

func TestSessionManager_Parse_WrongSecret(t *testing.T) {
	issuer := NewSessionManager("secret-a", time.Hour)
	verifier := NewSessionManager("secret-b", time.Hour)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Parse(token); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessionManager_Expired(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)
	// Issue with a manager whose clock-facing TTL has already elapsed.
	expired := &SessionManager{secret: []byte("secret"), ttl: -time.Hour}

	token, err := expired.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := m.Parse(token); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession for expired token, got %v", err)
	}
}
