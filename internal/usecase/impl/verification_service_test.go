package impl

import (
	"testing"

	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/service"
	mockService "nutrilens/internal/mocks/service"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerificationService_RequestApproveFlow(t *testing.T) {
	f := newFixture(t)
	srv := f.verificationService()
	admin := f.admin(t)
	company := f.seedPrincipal(t, entity.RoleCompany, entity.AccountStatusPending)

	requested, err := srv.RequestVerification(f.ctx, company)
	require.NoError(t, err)
	assert.True(t, requested.VerificationRequested)
	assert.Equal(t, entity.AccountStatusPending, requested.AccountStatus)

	_, err = srv.RequestVerification(f.ctx, company)
	assertAppError(t, err, domainerrors.ErrInvalidState, "Verification has already been requested")

	pending, err := srv.ListPendingVerifications(f.ctx, admin)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, company.ID, pending[0].ID)

	approved, err := srv.HandleVerification(f.ctx, admin, &usecase.HandleVerificationInput{
		CompanyID: company.ID.String(),
		Action:    "Approve",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStatusVerified, approved.AccountStatus)
	assert.False(t, approved.VerificationRequested)

	verified, err := srv.ListVerifiedCompanies(f.ctx, admin)
	require.NoError(t, err)
	require.Len(t, verified, 1)

	_, err = srv.RequestVerification(f.ctx, f.reload(t, company.ID))
	assertAppError(t, err, domainerrors.ErrInvalidState, "Company is already verified")

	removed, err := srv.RemoveVerification(f.ctx, admin, company.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStatusPending, removed.AccountStatus)

	_, err = srv.RemoveVerification(f.ctx, admin, company.ID.String())
	assertAppError(t, err, domainerrors.ErrInvalidState, "Company is not verified")

	assert.Equal(t, 1, f.metrics.decisions["verification/request"])
	assert.Equal(t, 1, f.metrics.decisions["verification/approve"])
	assert.Equal(t, 1, f.metrics.decisions["verification/remove"])
}

func TestVerificationService_DenyKeepsStatus(t *testing.T) {
	f := newFixture(t)
	srv := f.verificationService()
	admin := f.admin(t)
	company := f.seedPrincipal(t, entity.RoleCompany, entity.AccountStatusApproved)

	_, err := srv.RequestVerification(f.ctx, company)
	require.NoError(t, err)

	denied, err := srv.HandleVerification(f.ctx, admin, &usecase.HandleVerificationInput{
		CompanyID: company.ID.String(),
		Action:    "deny",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStatusApproved, denied.AccountStatus)
	assert.False(t, denied.VerificationRequested)

	_, err = srv.HandleVerification(f.ctx, admin, &usecase.HandleVerificationInput{
		CompanyID: company.ID.String(),
		Action:    "approve",
	})
	assertAppError(t, err, domainerrors.ErrInvalidState, "Company has no pending verification request")

	// A denied company may ask again.
	_, err = srv.RequestVerification(f.ctx, f.reload(t, company.ID))
	require.NoError(t, err)
}

func TestVerificationService_Authorization(t *testing.T) {
	f := newFixture(t)
	srv := f.verificationService()
	user := f.seedPrincipal(t, entity.RoleUser, entity.AccountStatusPending)
	company := f.seedPrincipal(t, entity.RoleCompany, entity.AccountStatusPending)

	_, err := srv.RequestVerification(f.ctx, user)
	assertAppError(t, err, domainerrors.ErrForbidden, "Only companies can request verification")

	_, err = srv.ListPendingVerifications(f.ctx, company)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = srv.HandleVerification(f.ctx, company, &usecase.HandleVerificationInput{CompanyID: company.ID.String(), Action: "approve"})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = srv.RemoveVerification(f.ctx, user, company.ID.String())
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	assert.Empty(t, f.metrics.decisions)
}

func TestVerificationService_HandleVerificationInputErrors(t *testing.T) {
	f := newFixture(t)
	srv := f.verificationService()
	admin := f.admin(t)
	user := f.seedPrincipal(t, entity.RoleUser, entity.AccountStatusPending)

	tests := []struct {
		name    string
		input   *usecase.HandleVerificationInput
		kind    *domainerrors.BaseError
		message string
	}{
		{
			name:    "missing company id",
			input:   &usecase.HandleVerificationInput{Action: "approve"},
			kind:    domainerrors.ErrValidation,
			message: "companyId is required",
		},
		{
			name:    "malformed company id",
			input:   &usecase.HandleVerificationInput{CompanyID: "42", Action: "approve"},
			kind:    domainerrors.ErrValidation,
			message: "companyId must be a valid id",
		},
		{
			name:    "unknown action",
			input:   &usecase.HandleVerificationInput{CompanyID: uuid.NewString(), Action: "maybe"},
			kind:    domainerrors.ErrValidation,
			message: `action must be "approve" or "deny"`,
		},
		{
			name:    "unknown company",
			input:   &usecase.HandleVerificationInput{CompanyID: uuid.NewString(), Action: "approve"},
			kind:    domainerrors.ErrNotFound,
			message: "Company not found",
		},
		{
			name:    "target is not a company",
			input:   &usecase.HandleVerificationInput{CompanyID: user.ID.String(), Action: "approve"},
			kind:    domainerrors.ErrNotFound,
			message: "Company not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.HandleVerification(f.ctx, admin, tt.input)
			assertAppError(t, err, tt.kind, tt.message)
		})
	}
}

func TestVerificationService_PublisherFailureDoesNotFailDecision(t *testing.T) {
	f := newFixture(t)
	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().
		PublishModerationEvent(mock.Anything, mock.MatchedBy(func(e *service.ModerationEvent) bool {
			return e.Type == service.EventVerificationRequested
		})).
		Return(errors.New("broker down")).
		Once()
	f.publisher = publisher

	company := f.seedPrincipal(t, entity.RoleCompany, entity.AccountStatusPending)

	requested, err := f.verificationService().RequestVerification(f.ctx, company)
	require.NoError(t, err)
	assert.True(t, requested.VerificationRequested)
	assert.True(t, f.reload(t, company.ID).VerificationRequested)
	assert.Equal(t, 1, f.metrics.failures[service.CollaboratorPublisher])
}
