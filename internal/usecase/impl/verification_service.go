package impl

import (
	"context"
	"log/slog"

	deliverycontext "nutrilens/internal/delivery/context"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/policy"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type verificationService struct {
	principals repository.PrincipalRepository
	recorder   *decisionRecorder
	logger     *slog.Logger
}

// VerificationServiceParams holds dependencies for VerificationService, injected by Fx.
type VerificationServiceParams struct {
	fx.In

	Principals repository.PrincipalRepository
	Publisher  service.EventPublisher
	Metrics    service.MetricsRecorder
	Logger     *slog.Logger
}

func NewVerificationService(params VerificationServiceParams) usecase.VerificationUsecase {
	return &verificationService{
		principals: params.Principals,
		recorder:   &decisionRecorder{publisher: params.Publisher, metrics: params.Metrics},
		logger:     params.Logger,
	}
}

func (srv *verificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *verificationService) RequestVerification(ctx context.Context, actor *entity.Principal) (*entity.Principal, error) {
	if err := policy.RequestVerification(actor).Err(); err != nil {
		return nil, err
	}

	company, err := srv.principals.ApplyVerificationTransition(ctx, actor.ID, entity.RequestVerification)
	if err != nil {
		return nil, srv.transitionError(ctx, actor.ID, entity.RequestVerification, err)
	}

	srv.log(ctx).Info("Company requested verification", slog.String("company_id", company.ID.String()))
	srv.recorder.record(ctx, srv.log(ctx), workflowVerification, service.EventVerificationRequested,
		company.ID, actor.ID, entity.RequestVerification.Name)

	return company, nil
}

func (srv *verificationService) ListPendingVerifications(ctx context.Context, actor *entity.Principal) ([]*entity.Principal, error) {
	if err := policy.Moderate(actor).Err(); err != nil {
		return nil, err
	}

	requested := true
	companies, err := srv.principals.ListCompanies(ctx, repository.CompanyFilter{VerificationRequested: &requested})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending verifications")
	}

	return companies, nil
}

// HandleVerification approves or denies a pending request. Denial keeps the account status,
// so the company may ask again later.
func (srv *verificationService) HandleVerification(ctx context.Context, actor *entity.Principal, input *usecase.HandleVerificationInput) (*entity.Principal, error) {
	if err := policy.Moderate(actor).Err(); err != nil {
		return nil, err
	}

	companyID, err := parseID("companyId", input.CompanyID)
	if err != nil {
		return nil, err
	}
	action, err := parseAction(input.Action)
	if err != nil {
		return nil, err
	}

	transition := entity.ApproveVerification
	if action == entity.ActionDeny {
		transition = entity.DenyVerification
	}

	company, err := srv.principals.ApplyVerificationTransition(ctx, companyID, transition)
	if err != nil {
		return nil, srv.transitionError(ctx, companyID, transition, err)
	}

	srv.log(ctx).Info("Verification request handled",
		slog.String("company_id", company.ID.String()),
		slog.String("action", string(action)),
	)
	srv.recorder.record(ctx, srv.log(ctx), workflowVerification, service.EventVerificationDecided,
		company.ID, actor.ID, string(action))

	return company, nil
}

func (srv *verificationService) ListVerifiedCompanies(ctx context.Context, actor *entity.Principal) ([]*entity.Principal, error) {
	if err := policy.Moderate(actor).Err(); err != nil {
		return nil, err
	}

	verified := entity.AccountStatusVerified
	companies, err := srv.principals.ListCompanies(ctx, repository.CompanyFilter{Status: &verified})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list verified companies")
	}

	return companies, nil
}

// RemoveVerification sends a verified company back to pending.
func (srv *verificationService) RemoveVerification(ctx context.Context, actor *entity.Principal, companyID string) (*entity.Principal, error) {
	if err := policy.Moderate(actor).Err(); err != nil {
		return nil, err
	}

	id, err := parseID("companyId", companyID)
	if err != nil {
		return nil, err
	}

	company, err := srv.principals.ApplyVerificationTransition(ctx, id, entity.RemoveVerification)
	if err != nil {
		return nil, srv.transitionError(ctx, id, entity.RemoveVerification, err)
	}

	srv.log(ctx).Info("Company verification removed", slog.String("company_id", company.ID.String()))
	srv.recorder.record(ctx, srv.log(ctx), workflowVerification, service.EventVerificationRemoved,
		company.ID, actor.ID, entity.RemoveVerification.Name)

	return company, nil
}

// transitionError explains a rejected transition from the principal's current state.
func (srv *verificationService) transitionError(ctx context.Context, id uuid.UUID, transition entity.VerificationTransition, err error) error {
	if errors.Is(err, repository.ErrPrincipalNotFound) {
		return domainerrors.ErrCompanyNotFound
	}
	if !errors.Is(err, repository.ErrTransitionRejected) {
		return errors.Wrapf(err, "failed to apply %s transition", transition.Name)
	}

	current, findErr := srv.principals.FindByID(ctx, id)
	if errors.Is(findErr, repository.ErrPrincipalNotFound) || (findErr == nil && !current.IsCompany()) {
		return domainerrors.ErrCompanyNotFound
	}
	if findErr != nil {
		return errors.Wrap(findErr, "failed to load company")
	}

	switch {
	case transition.Name == entity.RequestVerification.Name && current.IsVerified():
		return domainerrors.ErrInvalidState.WithMessage("Company is already verified")
	case transition.Name == entity.RequestVerification.Name:
		return domainerrors.ErrInvalidState.WithMessage("Verification has already been requested")
	case transition.Name == entity.RemoveVerification.Name:
		return domainerrors.ErrInvalidState.WithMessage("Company is not verified")
	default:
		return domainerrors.ErrInvalidState.WithMessage("Company has no pending verification request")
	}
}
