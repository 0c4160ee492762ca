package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the user.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates the provided access token string and extracts
	// the claims. Returns an error if validation fails (expired, invalid
	// signature, wrong token type, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token for the user.
	// Refresh tokens have a longer lifetime and are used to obtain new
	// access tokens.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken validates the provided refresh token string and
	// extracts the claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// AccessTokenLifetime returns how long generated access tokens live,
	// used by the API layer to report expiry to clients.
	AccessTokenLifetime() time.Duration
}

// Claims represents the custom claims structure for the JWT tokens.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	// Used to prevent token misuse across different contexts.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
