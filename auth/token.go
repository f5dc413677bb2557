// Package auth issues and verifies the signed bearer tokens that identify
// scrap owners.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed, expired, bad
// signature, or missing subject. Callers must not distinguish between them,
// so the package does not either.
var ErrInvalidToken = errors.New("auth: invalid token")

// Config configures a TokenManager.
type Config struct {
	// Secret is the HMAC signing key. Required.
	Secret []byte

	// Lifetime is how long issued tokens stay valid.
	// Default: 1 hour.
	Lifetime time.Duration
}

// TokenManager signs and verifies HS256 tokens carrying a user uid as the
// subject claim.
type TokenManager struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenManager creates a TokenManager from cfg, applying defaults.
func NewTokenManager(cfg Config) *TokenManager {
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = time.Hour
	}
	return &TokenManager{
		secret:   cfg.Secret,
		lifetime: cfg.Lifetime,
		now:      time.Now,
	}
}

// Sign issues a token for uid with issued-at and expiry claims.
func (m *TokenManager) Sign(uid string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks the signature and expiry of raw and returns the subject uid.
// Every failure mode collapses to ErrInvalidToken.
func (m *TokenManager) Verify(raw string) (string, error) {
	var claims jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
