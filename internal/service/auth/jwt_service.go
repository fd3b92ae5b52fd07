package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing the identity tokens carried in
// the session cookie.
type JWTService interface {
	// GenerateToken creates a signed token binding email to an expiry.
	// It returns the token string and the moment it expires.
	GenerateToken(ctx context.Context, email string) (string, time.Time, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of an identity token.
type Claims struct {
	// Email is the identity the token was issued for.
	Email string `json:"email"`

	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// SessionCookieName is the cookie that carries the identity token.
const SessionCookieName = "token"
