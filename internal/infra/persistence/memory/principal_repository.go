package memory

import (
	"context"
	"slices"
	"time"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/repository"

	"github.com/google/uuid"
)

type principalRepository struct {
	s *Store
}

func (r *principalRepository) Create(ctx context.Context, principal *entity.Principal) error {
	return r.s.write(ctx, func() error {
		if _, exists := r.s.principals[principal.ID]; exists {
			return repository.ErrDuplicatePrincipal
		}
		for _, p := range r.s.principals {
			if p.Username == principal.Username || p.Email == principal.Email {
				return repository.ErrDuplicatePrincipal
			}
		}

		r.s.principals[principal.ID] = clonePrincipal(principal)
		r.s.track(principal.ID)

		return nil
	})
}

func (r *principalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error) {
	p, err := r.FindCredentialsByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return p.Sanitized(), nil
}

func (r *principalRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Principal, error) {
	var out []*entity.Principal
	r.s.read(ctx, func() {
		for _, id := range ids {
			if p, ok := r.s.principals[id]; ok {
				out = append(out, clonePrincipal(p).Sanitized())
			}
		}
	})

	return out, nil
}

func (r *principalRepository) FindByLogin(ctx context.Context, username, email string) (*entity.Principal, error) {
	var found *entity.Principal
	r.s.read(ctx, func() {
		for _, p := range r.s.principals {
			if (username != "" && p.Username == username) || (email != "" && p.Email == email) {
				found = clonePrincipal(p)
				return
			}
		}
	})
	if found == nil {
		return nil, repository.ErrPrincipalNotFound
	}

	return found, nil
}

func (r *principalRepository) FindCredentialsByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error) {
	var found *entity.Principal
	r.s.read(ctx, func() {
		if p, ok := r.s.principals[id]; ok {
			found = clonePrincipal(p)
		}
	})
	if found == nil {
		return nil, repository.ErrPrincipalNotFound
	}

	return found, nil
}

func (r *principalRepository) ListCompanies(ctx context.Context, filter repository.CompanyFilter) ([]*entity.Principal, error) {
	out := []*entity.Principal{}
	r.s.read(ctx, func() {
		for _, p := range r.s.principals {
			if p.Role != entity.RoleCompany {
				continue
			}
			if filter.Status != nil && p.AccountStatus != *filter.Status {
				continue
			}
			if filter.VerificationRequested != nil && p.VerificationRequested != *filter.VerificationRequested {
				continue
			}
			out = append(out, clonePrincipal(p).Sanitized())
		}
		newestFirst(r.s, out, func(p *entity.Principal) (uuid.UUID, time.Time) { return p.ID, p.CreatedAt })
	})

	return out, nil
}

func (r *principalRepository) UpdateProfile(ctx context.Context, principal *entity.Principal) error {
	return r.update(ctx, principal.ID, func(p *entity.Principal) {
		p.FullName = principal.FullName
		p.Profile = clonePrincipal(principal).Profile
		p.CompanyRegistrationNo = principal.CompanyRegistrationNo
		p.GSTNo = principal.GSTNo
	})
}

func (r *principalRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.update(ctx, id, func(p *entity.Principal) { p.PasswordHash = passwordHash })
}

func (r *principalRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar entity.Media) error {
	return r.update(ctx, id, func(p *entity.Principal) { p.Avatar = avatar })
}

func (r *principalRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, digest string) error {
	return r.update(ctx, id, func(p *entity.Principal) { p.RefreshTokenHash = digest })
}

func (r *principalRepository) RotateRefreshToken(ctx context.Context, id uuid.UUID, expected, next string) error {
	return r.s.write(ctx, func() error {
		p, ok := r.s.principals[id]
		if !ok {
			return repository.ErrPrincipalNotFound
		}
		if expected == "" || p.RefreshTokenHash != expected {
			return repository.ErrRefreshTokenMismatch
		}

		p.RefreshTokenHash = next
		p.UpdatedAt = time.Now().UTC()

		return nil
	})
}

func (r *principalRepository) ApplyVerificationTransition(ctx context.Context, id uuid.UUID, transition entity.VerificationTransition) (*entity.Principal, error) {
	var updated *entity.Principal
	err := r.s.write(ctx, func() error {
		p, ok := r.s.principals[id]
		if !ok {
			return repository.ErrPrincipalNotFound
		}
		if !transition.Guard.Matches(p) {
			return repository.ErrTransitionRejected
		}

		transition.Change.ApplyTo(p)
		p.UpdatedAt = time.Now().UTC()
		updated = clonePrincipal(p).Sanitized()

		return nil
	})

	return updated, err
}

func (r *principalRepository) AddProduct(ctx context.Context, companyID, productID uuid.UUID) error {
	return r.update(ctx, companyID, func(p *entity.Principal) { p.Products = addToSet(p.Products, productID) })
}

func (r *principalRepository) RemoveProduct(ctx context.Context, companyID, productID uuid.UUID) error {
	return r.update(ctx, companyID, func(p *entity.Principal) { p.Products = pull(p.Products, productID) })
}

func (r *principalRepository) AddFavourite(ctx context.Context, id, productID uuid.UUID) error {
	return r.update(ctx, id, func(p *entity.Principal) { p.Favourites = addToSet(p.Favourites, productID) })
}

func (r *principalRepository) RemoveFavourite(ctx context.Context, id, productID uuid.UUID) error {
	return r.update(ctx, id, func(p *entity.Principal) { p.Favourites = pull(p.Favourites, productID) })
}

func (r *principalRepository) update(ctx context.Context, id uuid.UUID, mutate func(p *entity.Principal)) error {
	return r.s.write(ctx, func() error {
		p, ok := r.s.principals[id]
		if !ok {
			return repository.ErrPrincipalNotFound
		}

		mutate(p)
		p.UpdatedAt = time.Now().UTC()

		return nil
	})
}

func addToSet(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if slices.Contains(ids, id) {
		return ids
	}

	return append(ids, id)
}

func pull(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(ids, func(v uuid.UUID) bool { return v == id })
}
