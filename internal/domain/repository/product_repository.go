package repository

import (
	"context"

	"nutrilens/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductFilter narrows product listings. Nil fields are not filtered.
type ProductFilter struct {
	IsApproved        *bool
	ApprovalRequested *bool
	Category          *entity.Category
	CompanyID         *uuid.UUID
	IDs               []uuid.UUID
}

// ProductRepository is the product store. Listings are ordered newest first.
type ProductRepository interface {
	// Create inserts a product. Returns ErrDuplicateProductID when productId is taken.
	Create(ctx context.Context, product *entity.Product) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindByProductID(ctx context.Context, productID int64) (*entity.Product, error)
	ExistsByProductID(ctx context.Context, productID int64) (bool, error)

	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// UpdateDetails persists the company-editable attributes of the product.
	UpdateDetails(ctx context.Context, product *entity.Product) error
	UpdateImage(ctx context.Context, id uuid.UUID, image entity.Media) error
	UpdateScore(ctx context.Context, id uuid.UUID, rating float64, diseases []string) error

	// ApplyApprovalTransition applies change only if guard holds, else ErrTransitionRejected.
	ApplyApprovalTransition(ctx context.Context, id uuid.UUID, guard entity.ApprovalGuard, change entity.ApprovalChange) (*entity.Product, error)

	// DeleteWhere removes the product only if guard holds, else ErrTransitionRejected.
	DeleteWhere(ctx context.Context, id uuid.UUID, guard entity.ApprovalGuard) (*entity.Product, error)
}
