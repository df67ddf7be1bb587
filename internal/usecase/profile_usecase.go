package usecase

import (
	"context"
	"time"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/service"

	"github.com/google/uuid"
)

// UpdateAccountInput carries self-service profile edits. Nil fields are left unchanged.
type UpdateAccountInput struct {
	FullName *string
	Mobile   *string
	Address  *string
	Country  *string
	DOB      *time.Time
	Weight   *float64
	Height   *float64
	Gender   *bool
	IsVeg    *bool

	// Company-only fields.
	CompanyRegistrationNo *string
	GSTNo                 *string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// ProfileUsecase defines self-service account operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, principalID uuid.UUID) (*entity.Principal, error)
	UpdateAccount(ctx context.Context, actor *entity.Principal, input *UpdateAccountInput) (*entity.Principal, error)
	ChangePassword(ctx context.Context, actor *entity.Principal, input *ChangePasswordInput) error
	UpdateAvatar(ctx context.Context, actor *entity.Principal, file *service.MediaFile) (*entity.Principal, error)
}

// FavouriteUsecase manages a user's saved products.
type FavouriteUsecase interface {
	AddFavourite(ctx context.Context, actor *entity.Principal, productRef string) error
	RemoveFavourite(ctx context.Context, actor *entity.Principal, productRef string) error
	ListFavourites(ctx context.Context, actor *entity.Principal) ([]*entity.Product, error)
}
