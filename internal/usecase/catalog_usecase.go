package usecase

import (
	"context"

	"nutrilens/internal/domain/entity"
)

// CatalogUsecase is the public read side over products.
type CatalogUsecase interface {
	// ListApproved returns approved products, newest first. An empty category means all.
	ListApproved(ctx context.Context, category string) ([]*entity.Product, error)

	// GetProduct resolves a numeric productId or internal id in any approval state.
	GetProduct(ctx context.Context, productRef string) (*entity.Product, error)

	// RateProduct asks the scoring endpoint for a rating and stores the result on the product.
	RateProduct(ctx context.Context, productRef string) (*entity.Product, error)

	// ProductQRCode returns a PNG QR code linking to an approved product's page.
	ProductQRCode(ctx context.Context, productRef string) ([]byte, error)
}
