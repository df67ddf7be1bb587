package auth

import (
	"testing"
	"time"

	"nutrilens/config"
	"nutrilens/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{
			Access:  "test_access_secret_key_very_long_for_testing",
			Refresh: "test_refresh_secret_key_very_long_for_testing",
		},
		Auth: &config.AuthConfig{
			AccessTokenTTL:  5 * time.Minute,
			RefreshTokenTTL: time.Hour,
		},
	}
}

func testPrincipal() *entity.Principal {
	return &entity.Principal{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Role:     entity.RoleUser,
	}
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	principal := testPrincipal()
	pair, err := svc.GenerateTokens(principal)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	accessClaims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, accessClaims.PrincipalID)
	assert.Equal(t, principal.Email, accessClaims.Email)
	assert.Equal(t, principal.Username, accessClaims.Username)
	assert.Equal(t, principal.FullName, accessClaims.FullName)

	refreshClaims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, refreshClaims.PrincipalID)

	assert.Equal(t, 5*time.Minute, svc.AccessTokenDuration())
	assert.Equal(t, time.Hour, svc.RefreshTokenDuration())
}

func TestJWTService_TokensAreNotInterchangeable(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	pair, err := svc.GenerateTokens(testPrincipal())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_ConsecutivePairsDiffer(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	principal := testPrincipal()
	first, err := svc.GenerateTokens(principal)
	require.NoError(t, err)
	second, err := svc.GenerateTokens(principal)
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, svc.Digest(first.RefreshToken), svc.Digest(second.RefreshToken))
}

func TestJWTService_InvalidTokens(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	pair, err := svc.GenerateTokens(testPrincipal())
	require.NoError(t, err)

	other, err := NewJWTService(&config.Config{
		SecretKey: config.SecretKeyConfig{Access: "another_access_secret", Refresh: "another_refresh_secret"},
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "tampered", token: pair.AccessToken + "x"},
		{name: "none algorithm", token: unsignedToken(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.Error(t, err)
		})
	}

	t.Run("foreign secret", func(t *testing.T) {
		_, err := other.ValidateAccessToken(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := &jwtService{
		accessSecret:  []byte("access"),
		refreshSecret: []byte("refresh"),
		accessTTL:     time.Minute,
		refreshTTL:    time.Minute,
		now:           func() time.Time { return time.Now().Add(-time.Hour) },
	}

	pair, err := svc.GenerateTokens(testPrincipal())
	require.NoError(t, err)

	svc.now = time.Now

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNewJWTService_Errors(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.EqualError(t, err, "jwt secrets must be provided")

	_, err = NewJWTService(&config.Config{SecretKey: config.SecretKeyConfig{Access: "same", Refresh: "same"}})
	assert.Error(t, err)
}

func TestNewJWTService_DefaultDurations(t *testing.T) {
	svc, err := NewJWTService(&config.Config{SecretKey: config.SecretKeyConfig{Access: "a", Refresh: "r"}})
	require.NoError(t, err)

	assert.Equal(t, config.DefaultAccessTokenTTL, svc.AccessTokenDuration())
	assert.Equal(t, config.DefaultRefreshTokenTTL, svc.RefreshTokenDuration())
}

func unsignedToken(t *testing.T) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, accessTokenClaims{
		PrincipalID: uuid.NewString(),
		Type:        tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	return token
}
