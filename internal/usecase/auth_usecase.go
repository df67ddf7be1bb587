// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new principal.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
	// Role is optional and defaults to user. Only user and company may self-register.
	Role string
}

// LoginInput identifies the principal by username or email.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns a freshly minted token pair with the principal it belongs to.
type AuthOutput struct {
	Principal *entity.Principal
	Tokens    *service.TokenPair
}

// AuthUsecase covers registration and the token session lifecycle.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.Principal, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Logout clears the stored refresh token so it can no longer be rotated.
	Logout(ctx context.Context, principalID uuid.UUID) error

	// RefreshTokens exchanges the current refresh token for a new pair.
	// A superseded, cleared or forged token fails with Unauthorized.
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthOutput, error)
}

// SessionUsecase resolves the principal behind an access token.
type SessionUsecase interface {
	// Authenticate validates the token and loads the principal without credential material.
	Authenticate(ctx context.Context, accessToken string) (*entity.Principal, error)
}
