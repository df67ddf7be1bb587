package impl

import (
	"context"
	"log/slog"

	deliverycontext "nutrilens/internal/delivery/context"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/usecase"

	"github.com/pkg/errors"
)

type sessionService struct {
	principals   repository.PrincipalRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewSessionService creates the session resolver used by the auth middleware.
func NewSessionService(principals repository.PrincipalRepository, tokenService service.TokenService, logger *slog.Logger) usecase.SessionUsecase {
	return &sessionService{
		principals:   principals,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Authenticate never refreshes: an expired access token must be rotated explicitly by the client.
func (srv *sessionService) Authenticate(ctx context.Context, accessToken string) (*entity.Principal, error) {
	if accessToken == "" {
		return nil, domainerrors.ErrNoToken
	}

	claims, err := srv.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Access token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidToken
	}

	principal, err := srv.principals.FindByID(ctx, claims.PrincipalID)
	if errors.Is(err, repository.ErrPrincipalNotFound) {
		return nil, domainerrors.ErrInvalidToken
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load principal")
	}

	return principal, nil
}
