package memory

import (
	"context"
	"errors"
	"slices"
	"time"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/repository"

	"github.com/google/uuid"
)

type productRepository struct {
	s *Store
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.s.write(ctx, func() error {
		for _, p := range r.s.products {
			if p.ProductID == product.ProductID {
				return repository.ErrDuplicateProductID
			}
		}

		r.s.products[product.ID] = cloneProduct(product)
		r.s.track(product.ID)

		return nil
	})
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var found *entity.Product
	r.s.read(ctx, func() {
		if p, ok := r.s.products[id]; ok {
			found = cloneProduct(p)
		}
	})
	if found == nil {
		return nil, repository.ErrProductNotFound
	}

	return found, nil
}

func (r *productRepository) FindByProductID(ctx context.Context, productID int64) (*entity.Product, error) {
	var found *entity.Product
	r.s.read(ctx, func() {
		for _, p := range r.s.products {
			if p.ProductID == productID {
				found = cloneProduct(p)
				return
			}
		}
	})
	if found == nil {
		return nil, repository.ErrProductNotFound
	}

	return found, nil
}

func (r *productRepository) ExistsByProductID(ctx context.Context, productID int64) (bool, error) {
	_, err := r.FindByProductID(ctx, productID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return false, nil
	}

	return err == nil, err
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	out := []*entity.Product{}
	r.s.read(ctx, func() {
		for _, p := range r.s.products {
			if matchesProductFilter(p, filter) {
				out = append(out, cloneProduct(p))
			}
		}
		newestFirst(r.s, out, func(p *entity.Product) (uuid.UUID, time.Time) { return p.ID, p.CreatedAt })
	})

	return out, nil
}

func matchesProductFilter(p *entity.Product, f repository.ProductFilter) bool {
	switch {
	case f.IsApproved != nil && p.IsApproved != *f.IsApproved:
		return false
	case f.ApprovalRequested != nil && p.ApprovalRequested != *f.ApprovalRequested:
		return false
	case f.Category != nil && p.Category != *f.Category:
		return false
	case f.CompanyID != nil && p.CompanyID != *f.CompanyID:
		return false
	case f.IDs != nil && !slices.Contains(f.IDs, p.ID):
		return false
	default:
		return true
	}
}

func (r *productRepository) UpdateDetails(ctx context.Context, product *entity.Product) error {
	edited := cloneProduct(product)

	return r.update(ctx, product.ID, func(p *entity.Product) {
		p.Name = edited.Name
		p.Description = edited.Description
		p.Category = edited.Category
		p.NutritionalInfo = edited.NutritionalInfo
		p.Ingredients = edited.Ingredients
		p.Tags = edited.Tags
		p.Certifications = edited.Certifications
		p.ManufacturingDate = edited.ManufacturingDate
		p.ExpiryDate = edited.ExpiryDate
		p.Price = edited.Price
	})
}

func (r *productRepository) UpdateImage(ctx context.Context, id uuid.UUID, image entity.Media) error {
	return r.update(ctx, id, func(p *entity.Product) { p.Image = image })
}

func (r *productRepository) UpdateScore(ctx context.Context, id uuid.UUID, rating float64, diseases []string) error {
	diseases = slices.Clone(diseases)

	return r.update(ctx, id, func(p *entity.Product) {
		p.PublicRating = rating
		p.Diseases = diseases
	})
}

func (r *productRepository) ApplyApprovalTransition(ctx context.Context, id uuid.UUID, guard entity.ApprovalGuard, change entity.ApprovalChange) (*entity.Product, error) {
	var updated *entity.Product
	err := r.s.write(ctx, func() error {
		p, ok := r.s.products[id]
		if !ok {
			return repository.ErrProductNotFound
		}
		if !guard.Matches(p) {
			return repository.ErrTransitionRejected
		}

		change.ApplyTo(p)
		p.UpdatedAt = time.Now().UTC()
		updated = cloneProduct(p)

		return nil
	})

	return updated, err
}

func (r *productRepository) DeleteWhere(ctx context.Context, id uuid.UUID, guard entity.ApprovalGuard) (*entity.Product, error) {
	var deleted *entity.Product
	err := r.s.write(ctx, func() error {
		p, ok := r.s.products[id]
		if !ok {
			return repository.ErrProductNotFound
		}
		if !guard.Matches(p) {
			return repository.ErrTransitionRejected
		}

		delete(r.s.products, id)
		delete(r.s.order, id)
		deleted = p

		return nil
	})

	return deleted, err
}

func (r *productRepository) update(ctx context.Context, id uuid.UUID, mutate func(p *entity.Product)) error {
	return r.s.write(ctx, func() error {
		p, ok := r.s.products[id]
		if !ok {
			return repository.ErrProductNotFound
		}

		mutate(p)
		p.UpdatedAt = time.Now().UTC()

		return nil
	})
}
