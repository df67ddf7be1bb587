package impl

import (
	"testing"

	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Secret123!"

func registerInput(username string) *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Alice Doe",
		Password: testPassword,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("defaults to a pending user without credentials", func(t *testing.T) {
		f := newFixture(t)
		srv := f.authService(t)

		p, err := srv.Register(f.ctx, registerInput("Alice"))
		require.NoError(t, err)

		assert.Equal(t, "alice", p.Username)
		assert.Equal(t, entity.RoleUser, p.Role)
		assert.Equal(t, entity.AccountStatusPending, p.AccountStatus)
		assert.False(t, p.VerificationRequested)
		assert.Empty(t, p.PasswordHash)
		assert.Empty(t, p.RefreshTokenHash)
	})

	t.Run("company role is self-registrable", func(t *testing.T) {
		f := newFixture(t)
		input := registerInput("acme")
		input.Role = "company"

		p, err := f.authService(t).Register(f.ctx, input)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleCompany, p.Role)
	})

	t.Run("admin role is rejected", func(t *testing.T) {
		f := newFixture(t)
		input := registerInput("mallory")
		input.Role = "admin"

		_, err := f.authService(t).Register(f.ctx, input)
		assertAppError(t, err, domainerrors.ErrValidation, "role must be user or company")
	})

	t.Run("missing fields are reported in order", func(t *testing.T) {
		f := newFixture(t)
		input := registerInput("bob")
		input.FullName = " "
		input.Password = ""

		_, err := f.authService(t).Register(f.ctx, input)
		assertAppError(t, err, domainerrors.ErrValidation, "All fields are required")

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		require.Len(t, appErr.FieldErrors(), 2)
		assert.Equal(t, "fullName", appErr.FieldErrors()[0].Field)
		assert.Equal(t, "password", appErr.FieldErrors()[1].Field)
	})

	t.Run("weak password", func(t *testing.T) {
		f := newFixture(t)
		input := registerInput("carol")
		input.Password = "short"

		_, err := f.authService(t).Register(f.ctx, input)
		assertAppError(t, err, domainerrors.ErrValidation, "password must be at least 8 characters")
	})

	t.Run("duplicate username or email conflicts", func(t *testing.T) {
		f := newFixture(t)
		srv := f.authService(t)

		_, err := srv.Register(f.ctx, registerInput("dave"))
		require.NoError(t, err)

		_, err = srv.Register(f.ctx, registerInput("DAVE"))
		assertAppError(t, err, domainerrors.ErrConflict, "User with this email or username already exists")
	})
}

func TestAuthService_LoginAndRotation(t *testing.T) {
	f := newFixture(t)
	srv := f.authService(t)

	registered, err := srv.Register(f.ctx, registerInput("erin"))
	require.NoError(t, err)

	t.Run("wrong password and unknown login look the same", func(t *testing.T) {
		_, err := srv.Login(f.ctx, &usecase.LoginInput{Username: "erin", Password: "wrong-password"})
		assertAppError(t, err, domainerrors.ErrUnauthorized, "Invalid user credentials")

		_, err = srv.Login(f.ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: testPassword})
		assertAppError(t, err, domainerrors.ErrUnauthorized, "Invalid user credentials")
	})

	t.Run("requires a login and a password", func(t *testing.T) {
		_, err := srv.Login(f.ctx, &usecase.LoginInput{Password: testPassword})
		require.ErrorIs(t, err, domainerrors.ErrValidation)

		_, err = srv.Login(f.ctx, &usecase.LoginInput{Username: "erin"})
		require.ErrorIs(t, err, domainerrors.ErrValidation)
	})

	first, err := srv.Login(f.ctx, &usecase.LoginInput{Email: "ERIN@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, first.Principal.ID)
	assert.Empty(t, first.Principal.PasswordHash)
	require.NotNil(t, first.Tokens)
	assert.NotEmpty(t, first.Tokens.AccessToken)
	assert.NotEqual(t, first.Tokens.AccessToken, first.Tokens.RefreshToken)

	rotated, err := srv.RefreshTokens(f.ctx, first.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.Tokens.RefreshToken, rotated.Tokens.RefreshToken)

	t.Run("a rotated token cannot be replayed", func(t *testing.T) {
		_, err := srv.RefreshTokens(f.ctx, first.Tokens.RefreshToken)
		assertAppError(t, err, domainerrors.ErrUnauthorized, "Invalid or expired refresh token")
	})

	t.Run("a new login invalidates the previous refresh token", func(t *testing.T) {
		second, err := srv.Login(f.ctx, &usecase.LoginInput{Username: "erin", Password: testPassword})
		require.NoError(t, err)

		_, err = srv.RefreshTokens(f.ctx, rotated.Tokens.RefreshToken)
		require.ErrorIs(t, err, domainerrors.ErrUnauthorized)

		_, err = srv.RefreshTokens(f.ctx, second.Tokens.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("access tokens are not refresh tokens", func(t *testing.T) {
		_, err := srv.RefreshTokens(f.ctx, first.Tokens.AccessToken)
		assertAppError(t, err, domainerrors.ErrUnauthorized, "Invalid or expired refresh token")
	})

	t.Run("empty refresh token", func(t *testing.T) {
		_, err := srv.RefreshTokens(f.ctx, "")
		assertAppError(t, err, domainerrors.ErrUnauthorized, "Unauthorized request: no token provided")
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	srv := f.authService(t)

	_, err := srv.Register(f.ctx, registerInput("frank"))
	require.NoError(t, err)
	out, err := srv.Login(f.ctx, &usecase.LoginInput{Username: "frank", Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, srv.Logout(f.ctx, out.Principal.ID))

	_, err = srv.RefreshTokens(f.ctx, out.Tokens.RefreshToken)
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	err = srv.Logout(f.ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSessionService_Authenticate(t *testing.T) {
	f := newFixture(t)
	tokens := f.tokens(t)
	srv := NewSessionService(f.store.Principals(), tokens, f.logger)

	company := f.verifiedCompany(t)
	pair, err := tokens.GenerateTokens(company)
	require.NoError(t, err)

	t.Run("resolves the current principal", func(t *testing.T) {
		p, err := srv.Authenticate(f.ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, company.ID, p.ID)
		assert.Equal(t, entity.AccountStatusVerified, p.AccountStatus)
		assert.Empty(t, p.PasswordHash)
	})

	t.Run("no token", func(t *testing.T) {
		_, err := srv.Authenticate(f.ctx, "")
		assertAppError(t, err, domainerrors.ErrUnauthorized, "Unauthorized request: no token provided")
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := srv.Authenticate(f.ctx, pair.RefreshToken)
		assertAppError(t, err, domainerrors.ErrUnauthorized, "Invalid or expired access token")
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := srv.Authenticate(f.ctx, "not-a-jwt")
		assertAppError(t, err, domainerrors.ErrUnauthorized, "Invalid or expired access token")
	})

	t.Run("principal no longer exists", func(t *testing.T) {
		ghost := entity.NewPrincipal("ghost", "ghost@example.com", "Ghost", entity.RoleUser)
		ghostPair, err := tokens.GenerateTokens(ghost)
		require.NoError(t, err)

		_, err = srv.Authenticate(f.ctx, ghostPair.AccessToken)
		assertAppError(t, err, domainerrors.ErrUnauthorized, "Invalid or expired access token")
	})
}
