package usecase

import (
	"context"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/service"
)

// CreateNewsInput defines a new article.
type CreateNewsInput struct {
	Title            string
	ShortDescription string
	Content          string
	Image            *service.MediaFile
}

// NewsUsecase manages admin-published articles.
type NewsUsecase interface {
	CreateNews(ctx context.Context, actor *entity.Principal, input *CreateNewsInput) (*entity.News, error)
	ListNews(ctx context.Context) ([]*entity.News, error)
	GetNews(ctx context.Context, newsID string) (*entity.News, error)
	UpdateNewsDetails(ctx context.Context, actor *entity.Principal, newsID string, details entity.NewsDetails) (*entity.News, error)
	UpdateNewsImage(ctx context.Context, actor *entity.Principal, newsID string, image *service.MediaFile) (*entity.News, error)
}

// ReviewUsecase manages comments on approved products.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, actor *entity.Principal, productRef, comment string) (*entity.Review, error)
	ListReviews(ctx context.Context, productRef string) ([]*entity.Review, error)
	React(ctx context.Context, actor *entity.Principal, reviewID string, reaction entity.ReviewReaction) (*entity.Review, error)
}
