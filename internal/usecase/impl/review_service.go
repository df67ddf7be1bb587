package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/policy"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type reviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, logger *slog.Logger) usecase.ReviewUsecase {
	return &reviewService{
		reviews:  reviews,
		products: products,
		logger:   logger,
	}
}

func (srv *reviewService) CreateReview(ctx context.Context, actor *entity.Principal, productRef, comment string) (*entity.Review, error) {
	product, err := findProduct(ctx, srv.products, productRef)
	if err != nil {
		return nil, err
	}
	if err := policy.WriteReview(actor, product).Err(); err != nil {
		return nil, err
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, domainerrors.NewValidationError("comment", "comment is required")
	}

	now := time.Now().UTC()
	review := &entity.Review{
		ID:        uuid.New(),
		ProductID: product.ID,
		UserID:    actor.ID,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := srv.reviews.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	srv.logger.DebugContext(ctx, "Review created",
		slog.String("review_id", review.ID.String()),
		slog.String("product_id", product.ID.String()),
	)

	return review, nil
}

func (srv *reviewService) ListReviews(ctx context.Context, productRef string) ([]*entity.Review, error) {
	product, err := findProduct(ctx, srv.products, productRef)
	if err != nil {
		return nil, err
	}

	reviews, err := srv.reviews.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

func (srv *reviewService) React(ctx context.Context, actor *entity.Principal, reviewID string, reaction entity.ReviewReaction) (*entity.Review, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	id, err := parseID("reviewId", reviewID)
	if err != nil {
		return nil, err
	}

	review, err := srv.reviews.React(ctx, id, reaction)
	if errors.Is(err, repository.ErrReviewNotFound) {
		return nil, domainerrors.ErrReviewNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to record reaction")
	}

	return review, nil
}
