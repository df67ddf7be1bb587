package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "nutrilens/internal/delivery/context"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	principals   repository.PrincipalRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Principals   repository.PrincipalRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		principals:   params.Principals,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a pending principal with role user or company.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Principal, error) {
	role, err := registrationRole(input.Role)
	if err != nil {
		return nil, err
	}

	missing := requiredFields(
		"fullName", input.FullName,
		"email", input.Email,
		"username", input.Username,
		"password", input.Password,
	)
	if len(missing) > 0 {
		return nil, domainerrors.ErrValidation.WithMessage("All fields are required").WithFieldErrors(missing...)
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	principal := entity.NewPrincipal(input.Username, input.Email, input.FullName, role)
	principal.PasswordHash = hash

	if err := srv.principals.Create(ctx, principal); err != nil {
		if errors.Is(err, repository.ErrDuplicatePrincipal) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create principal")
	}

	srv.log(ctx).Info("Principal registered",
		slog.String("principal_id", principal.ID.String()),
		slog.String("role", role.String()),
	)

	return principal.Sanitized(), nil
}

// Login checks the password and issues a new token pair, replacing any previous refresh token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	username := entity.NormalizeLogin(input.Username)
	email := entity.NormalizeLogin(input.Email)
	if username == "" && email == "" {
		return nil, domainerrors.NewValidationError("username", "username or email is required")
	}
	if input.Password == "" {
		return nil, domainerrors.NewValidationError("password", "password is required")
	}

	principal, err := srv.principals.FindByLogin(ctx, username, email)
	if errors.Is(err, repository.ErrPrincipalNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find principal")
	}

	if !srv.hasher.Check(input.Password, principal.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.String("principal_id", principal.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	tokens, err := srv.tokenService.GenerateTokens(principal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}
	if err := srv.principals.SetRefreshToken(ctx, principal.ID, srv.tokenService.Digest(tokens.RefreshToken)); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	srv.log(ctx).Info("Principal logged in", slog.String("principal_id", principal.ID.String()))

	return &usecase.AuthOutput{Principal: principal.Sanitized(), Tokens: tokens}, nil
}

func (srv *authService) Logout(ctx context.Context, principalID uuid.UUID) error {
	err := srv.principals.SetRefreshToken(ctx, principalID, "")
	if errors.Is(err, repository.ErrPrincipalNotFound) {
		return domainerrors.ErrPrincipalNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to clear refresh token")
	}

	srv.log(ctx).Info("Principal logged out", slog.String("principal_id", principalID.String()))

	return nil
}

// RefreshTokens rotates the pair. The stored digest is swapped only if it still equals the presented token's,
// so a token that was already rotated, or cleared by logout, can never be used again.
func (srv *authService) RefreshTokens(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, domainerrors.ErrNoToken
	}

	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		srv.log(ctx).Debug("Refresh token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	principal, err := srv.principals.FindByID(ctx, claims.PrincipalID)
	if errors.Is(err, repository.ErrPrincipalNotFound) {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find principal")
	}

	tokens, err := srv.tokenService.GenerateTokens(principal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	err = srv.principals.RotateRefreshToken(ctx, principal.ID,
		srv.tokenService.Digest(refreshToken),
		srv.tokenService.Digest(tokens.RefreshToken),
	)
	switch {
	case errors.Is(err, repository.ErrRefreshTokenMismatch), errors.Is(err, repository.ErrPrincipalNotFound):
		srv.log(ctx).Warn("Refresh token reuse or revoked token detected",
			slog.String("principal_id", principal.ID.String()),
		)

		return nil, domainerrors.ErrRefreshTokenInvalid
	case err != nil:
		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	return &usecase.AuthOutput{Principal: principal, Tokens: tokens}, nil
}

func registrationRole(raw string) (entity.Role, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return entity.RoleUser, nil
	}

	role := entity.Role(raw)
	if !role.IsSelfRegistrable() {
		return "", domainerrors.NewValidationError("role", "role must be user or company")
	}

	return role, nil
}
