// Package auth issues and verifies the signed session tokens that stand in
// for server-side sessions. A token carries the user id and role; handlers
// read both from the request context after the auth middleware has run.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/naminara/ferry-logbook/internal/domain"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// trusted: bad signature, expired, malformed, or wrong signing method.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the verified content of a session token.
type Claims struct {
	UserID string
	Role   domain.Role
}

// Manager signs and verifies session tokens with a single HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager constructs a Manager. Tokens it issues expire after ttl.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for user.
func (m *Manager) Issue(user domain.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth.Manager.Issue: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token.
func (m *Manager) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	roleStr, _ := mc["role"].(string)
	role := domain.Role(roleStr)
	if sub == "" || !role.Valid() {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: sub, Role: role}, nil
}
