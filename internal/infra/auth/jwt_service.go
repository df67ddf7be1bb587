// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"nutrilens/config"
	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	now           func() time.Time
}

type accessTokenClaims struct {
	PrincipalID string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	Type        string `json:"type"`
	jwt.RegisteredClaims
}

type refreshTokenClaims struct {
	PrincipalID string `json:"id"`
	Type        string `json:"type"`
	jwt.RegisteredClaims
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}

	svc := &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     config.DefaultAccessTokenTTL,
		refreshTTL:    config.DefaultRefreshTokenTTL,
		now:           time.Now,
	}
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			svc.accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			svc.refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return svc, nil
}

// GenerateTokens creates a new access token and refresh token for the principal.
func (s *jwtService) GenerateTokens(principal *entity.Principal) (*service.TokenPair, error) {
	now := s.now()

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims{
		PrincipalID:      principal.ID.String(),
		Email:            principal.Email,
		Username:         principal.Username,
		FullName:         principal.FullName,
		Type:             tokenTypeAccess,
		RegisteredClaims: s.registeredClaims(principal.ID, now, s.accessTTL),
	}).SignedString(s.accessSecret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshTokenClaims{
		PrincipalID:      principal.ID.String(),
		Type:             tokenTypeRefresh,
		RegisteredClaims: s.registeredClaims(principal.ID, now, s.refreshTTL),
	}).SignedString(s.refreshSecret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign refresh token")
	}

	return &service.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ValidateAccessToken verifies an access token without consulting the store.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.AccessClaims, error) {
	claims := &accessTokenClaims{}
	if err := s.parse(tokenString, claims, s.accessSecret); err != nil {
		return nil, errors.Wrap(err, "invalid access token")
	}
	if claims.Type != tokenTypeAccess {
		return nil, errors.Errorf("unexpected token type %q", claims.Type)
	}

	id, err := uuid.Parse(claims.PrincipalID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid principal id in access token")
	}

	return &service.AccessClaims{
		PrincipalID: id,
		Email:       claims.Email,
		Username:    claims.Username,
		FullName:    claims.FullName,
	}, nil
}

// ValidateRefreshToken verifies a refresh token without consulting the store.
func (s *jwtService) ValidateRefreshToken(tokenString string) (*service.RefreshClaims, error) {
	claims := &refreshTokenClaims{}
	if err := s.parse(tokenString, claims, s.refreshSecret); err != nil {
		return nil, errors.Wrap(err, "invalid refresh token")
	}
	if claims.Type != tokenTypeRefresh {
		return nil, errors.Errorf("unexpected token type %q", claims.Type)
	}

	id, err := uuid.Parse(claims.PrincipalID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid principal id in refresh token")
	}

	return &service.RefreshClaims{PrincipalID: id}, nil
}

// Digest hashes a refresh token for storage.
func (s *jwtService) Digest(token string) string {
	return util.SHA256Hex([]byte(token))
}

func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) registeredClaims(principalID uuid.UUID, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(), // keeps consecutive pairs distinct
		Subject:   principalID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *jwtService) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return errors.WithStack(err)
	}
	if !token.Valid {
		return errors.New("token is not valid")
	}

	return nil
}
