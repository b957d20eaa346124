// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"codeberg.org/oliverandrich/music-catalog/internal/models"
)

// DefaultTokenTTL is the token lifetime used when none is configured.
const DefaultTokenTTL = time.Hour

var (
	ErrMissingSecret = errors.New("token secret must not be empty")
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
)

// Claims is the JWT payload. The user object mirrors models.Identity.
type Claims struct {
	jwt.RegisteredClaims
	User models.Identity `json:"user"`
}

// TokenIssuer signs and verifies HS256 tokens. It is safe for concurrent use.
type TokenIssuer struct {
	now    func() time.Time
	secret []byte
	ttl    time.Duration
}

// TokenOption configures a TokenIssuer.
type TokenOption func(*TokenIssuer)

// WithClock replaces the time source, used by tests.
func WithClock(now func() time.Time) TokenOption {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

// NewTokenIssuer creates an issuer. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration, opts ...TokenOption) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	t := &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// TTL returns the token lifetime.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue signs a token for identity that expires after the configured TTL.
func (t *TokenIssuer) Issue(identity models.Identity) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		User: identity,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// The database is not consulted.
func (t *TokenIssuer) Verify(tokenString string) (models.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrExpiredToken
		}
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.User.ID == 0 {
		return models.Identity{}, ErrInvalidToken
	}

	return claims.User, nil
}
