package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession covers every way a session token can be unusable:
// malformed, tampered, expired, or missing its username claim.
var ErrInvalidSession = errors.New("invalid session token")

// SessionManager implements ports.SessionManager with HS256-signed tokens.
// The token carries only the username; the role is looked up live on each
// request so role changes apply without re-login.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager returns a SessionManager signing with secret. A
// non-positive ttl defaults to 24 hours.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

func (m *SessionManager) Issue(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return signed, nil
}

func (m *SessionManager) Parse(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", ErrInvalidSession
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return "", ErrInvalidSession
	}
	return username, nil
}
