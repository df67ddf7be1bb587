package service

import (
	"time"

	"nutrilens/internal/domain/entity"

	"github.com/google/uuid"
)

// AccessClaims is the identity embedded in an access token.
type AccessClaims struct {
	PrincipalID uuid.UUID
	Email       string
	Username    string
	FullName    string
}

// RefreshClaims is the identity embedded in a refresh token.
type RefreshClaims struct {
	PrincipalID uuid.UUID
}

// TokenPair is a freshly minted access/refresh pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService defines the interface for generating and validating JWTs.
// It is stateless: storing the refresh token is up to the caller.
type TokenService interface {
	// GenerateTokens mints a new pair for the principal. Every call yields distinct tokens.
	GenerateTokens(principal *entity.Principal) (*TokenPair, error)

	// ValidateAccessToken checks signature, algorithm, expiry and token type.
	ValidateAccessToken(token string) (*AccessClaims, error)

	// ValidateRefreshToken checks signature, algorithm, expiry and token type.
	ValidateRefreshToken(token string) (*RefreshClaims, error)

	// Digest returns the value persisted in place of a refresh token.
	Digest(token string) string

	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}
