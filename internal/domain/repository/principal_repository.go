package repository

import (
	"context"

	"nutrilens/internal/domain/entity"

	"github.com/google/uuid"
)

// CompanyFilter narrows company listings. Nil fields are not filtered.
type CompanyFilter struct {
	Status                *entity.AccountStatus
	VerificationRequested *bool
}

// PrincipalRepository is the credential store.
// Unless a method says otherwise, returned principals carry no password or refresh token digest.
type PrincipalRepository interface {
	// Create inserts a new principal. Returns ErrDuplicatePrincipal on a username or email clash.
	Create(ctx context.Context, principal *entity.Principal) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error)

	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Principal, error)

	// FindByLogin looks a principal up by username or email and includes the password hash.
	FindByLogin(ctx context.Context, username, email string) (*entity.Principal, error)

	// FindCredentialsByID includes the password hash.
	FindCredentialsByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error)

	ListCompanies(ctx context.Context, filter CompanyFilter) ([]*entity.Principal, error)

	// UpdateProfile persists fullName, profile attributes and company numbers.
	UpdateProfile(ctx context.Context, principal *entity.Principal) error

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	UpdateAvatar(ctx context.Context, id uuid.UUID, avatar entity.Media) error

	// SetRefreshToken overwrites the stored digest. An empty digest clears it.
	SetRefreshToken(ctx context.Context, id uuid.UUID, digest string) error

	// RotateRefreshToken swaps expected for next in one conditional write.
	// Returns ErrRefreshTokenMismatch when the stored digest differs from expected.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, expected, next string) error

	// ApplyVerificationTransition applies the change only if the guard holds.
	// Returns ErrTransitionRejected when it does not, and the updated principal otherwise.
	ApplyVerificationTransition(ctx context.Context, id uuid.UUID, transition entity.VerificationTransition) (*entity.Principal, error)

	AddProduct(ctx context.Context, companyID, productID uuid.UUID) error
	RemoveProduct(ctx context.Context, companyID, productID uuid.UUID) error

	AddFavourite(ctx context.Context, id, productID uuid.UUID) error
	RemoveFavourite(ctx context.Context, id, productID uuid.UUID) error
}
