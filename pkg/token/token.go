// Package token issues and verifies the signed bearer credential that
// represents a logged-in session.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid is the only failure verification reports. Malformed,
// expired and forged tokens are deliberately indistinguishable to callers.
var ErrTokenInvalid = errors.New("invalid or expired token")

type Claims struct {
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the subject id and the issue time.
func (m *Manager) Issue(subjectID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a signed token, returning the subject id
// and issue time on success and ErrTokenInvalid on any failure.
func (m *Manager) Verify(signed string) (subjectID string, issuedAt time.Time, err error) {
	parsed, err := jwt.ParseWithClaims(signed, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", time.Time{}, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" || claims.IssuedAt == nil {
		return "", time.Time{}, ErrTokenInvalid
	}

	return claims.Subject, claims.IssuedAt.Time, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}
