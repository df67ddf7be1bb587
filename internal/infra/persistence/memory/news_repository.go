package memory

import (
	"context"
	"time"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/repository"

	"github.com/google/uuid"
)

type newsRepository struct {
	s *Store
}

func (r *newsRepository) Create(ctx context.Context, news *entity.News) error {
	return r.s.write(ctx, func() error {
		r.s.news[news.ID] = cloneNews(news)
		r.s.track(news.ID)

		return nil
	})
}

func (r *newsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.News, error) {
	var found *entity.News
	r.s.read(ctx, func() {
		if n, ok := r.s.news[id]; ok {
			found = cloneNews(n)
		}
	})
	if found == nil {
		return nil, repository.ErrNewsNotFound
	}

	return found, nil
}

func (r *newsRepository) List(ctx context.Context) ([]*entity.News, error) {
	out := []*entity.News{}
	r.s.read(ctx, func() {
		for _, n := range r.s.news {
			out = append(out, cloneNews(n))
		}
		newestFirst(r.s, out, func(n *entity.News) (uuid.UUID, time.Time) { return n.ID, n.CreatedAt })
	})

	return out, nil
}

func (r *newsRepository) UpdateDetails(ctx context.Context, news *entity.News) error {
	return r.update(ctx, news.ID, func(n *entity.News) {
		n.Title = news.Title
		n.ShortDescription = news.ShortDescription
		n.Content = news.Content
	})
}

func (r *newsRepository) UpdateImage(ctx context.Context, id uuid.UUID, image entity.Media) error {
	return r.update(ctx, id, func(n *entity.News) { n.Image = image })
}

func (r *newsRepository) update(ctx context.Context, id uuid.UUID, mutate func(n *entity.News)) error {
	return r.s.write(ctx, func() error {
		n, ok := r.s.news[id]
		if !ok {
			return repository.ErrNewsNotFound
		}

		mutate(n)
		n.UpdatedAt = time.Now().UTC()

		return nil
	})
}

type reviewRepository struct {
	s *Store
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return r.s.write(ctx, func() error {
		r.s.reviews[review.ID] = cloneReview(review)
		r.s.track(review.ID)

		return nil
	})
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var found *entity.Review
	r.s.read(ctx, func() {
		if rv, ok := r.s.reviews[id]; ok {
			found = cloneReview(rv)
		}
	})
	if found == nil {
		return nil, repository.ErrReviewNotFound
	}

	return found, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	out := []*entity.Review{}
	r.s.read(ctx, func() {
		for _, rv := range r.s.reviews {
			if rv.ProductID == productID {
				out = append(out, cloneReview(rv))
			}
		}
		newestFirst(r.s, out, func(rv *entity.Review) (uuid.UUID, time.Time) { return rv.ID, rv.CreatedAt })
	})

	return out, nil
}

func (r *reviewRepository) React(ctx context.Context, id uuid.UUID, reaction entity.ReviewReaction) (*entity.Review, error) {
	var updated *entity.Review
	err := r.s.write(ctx, func() error {
		rv, ok := r.s.reviews[id]
		if !ok {
			return repository.ErrReviewNotFound
		}

		switch reaction {
		case entity.ReactionLike:
			rv.Likes++
		case entity.ReactionDislike:
			rv.Dislikes++
		}
		rv.UpdatedAt = time.Now().UTC()
		updated = cloneReview(rv)

		return nil
	})

	return updated, err
}

func (r *reviewRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.s.write(ctx, func() error {
		for id, rv := range r.s.reviews {
			if rv.ProductID == productID {
				delete(r.s.reviews, id)
				delete(r.s.order, id)
			}
		}

		return nil
	})
}
