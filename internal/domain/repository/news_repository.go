package repository

import (
	"context"

	"nutrilens/internal/domain/entity"

	"github.com/google/uuid"
)

type NewsRepository interface {
	Create(ctx context.Context, news *entity.News) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.News, error)
	List(ctx context.Context) ([]*entity.News, error)
	UpdateDetails(ctx context.Context, news *entity.News) error
	UpdateImage(ctx context.Context, id uuid.UUID, image entity.Media) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// React increments the like or dislike counter atomically.
	React(ctx context.Context, id uuid.UUID, reaction entity.ReviewReaction) (*entity.Review, error)

	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
