// Package auth decodes bearer tokens and carries the resulting claims on a
// request's context.Context so lower layers can read them without having
// them threaded through every signature.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims represents the JWT claims structure
type Claims struct {
	UserID   uint   `json:"user_id"`
	TenantID uint   `json:"tenant_id"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying the decoded claims. Any value is
// accepted so that foreign claim shapes (jwt.MapClaims) survive the trip;
// readers decide what they can use.
func WithClaims(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// RawClaims returns whatever the authentication layer stored, or nil.
func RawClaims(ctx context.Context) any {
	if ctx == nil {
		return nil
	}
	return ctx.Value(claimsKey{})
}

// ClaimsFromContext returns the typed claims when present.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := RawClaims(ctx).(*Claims)
	return c, ok && c != nil
}

// ParseToken validates an HS256 token and returns its claims.
func ParseToken(secret, token string) (*Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SignToken issues an HS256 token for development tooling and tests.
// Production tokens come from the identity provider.
func SignToken(secret string, userID, tenantID uint, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		TenantID: tenantID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
