package impl

import (
	"context"
	"log/slog"

	deliverycontext "nutrilens/internal/delivery/context"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/policy"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type favouriteService struct {
	principals repository.PrincipalRepository
	products   repository.ProductRepository
	logger     *slog.Logger
}

func NewFavouriteService(principals repository.PrincipalRepository, products repository.ProductRepository, logger *slog.Logger) usecase.FavouriteUsecase {
	return &favouriteService{
		principals: principals,
		products:   products,
		logger:     logger,
	}
}

func (srv *favouriteService) AddFavourite(ctx context.Context, actor *entity.Principal, productRef string) error {
	if err := policy.KeepFavourites(actor).Err(); err != nil {
		return err
	}

	product, err := findProduct(ctx, srv.products, productRef)
	if err != nil {
		return err
	}
	if !product.IsApproved {
		return domainerrors.ErrInvalidState.WithMessage("Only approved products can be added to favourites")
	}

	if err := srv.principals.AddFavourite(ctx, actor.ID, product.ID); err != nil {
		return errors.Wrap(err, "failed to add favourite")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Favourite added",
		slog.String("principal_id", actor.ID.String()),
		slog.String("product_id", product.ID.String()),
	)

	return nil
}

// RemoveFavourite also accepts the internal id of a product that no longer exists.
func (srv *favouriteService) RemoveFavourite(ctx context.Context, actor *entity.Principal, productRef string) error {
	if err := policy.KeepFavourites(actor).Err(); err != nil {
		return err
	}

	var productID uuid.UUID
	product, err := findProduct(ctx, srv.products, productRef)
	switch {
	case err == nil:
		productID = product.ID
	case errors.Is(err, domainerrors.ErrNotFound):
		id, parseErr := uuid.Parse(productRef)
		if parseErr != nil {
			return err
		}
		productID = id
	default:
		return err
	}

	if err := srv.principals.RemoveFavourite(ctx, actor.ID, productID); err != nil {
		return errors.Wrap(err, "failed to remove favourite")
	}

	return nil
}

// ListFavourites returns the favourites that are still listed.
func (srv *favouriteService) ListFavourites(ctx context.Context, actor *entity.Principal) ([]*entity.Product, error) {
	if err := policy.KeepFavourites(actor).Err(); err != nil {
		return nil, err
	}

	principal, err := srv.principals.FindByID(ctx, actor.ID)
	if errors.Is(err, repository.ErrPrincipalNotFound) {
		return nil, domainerrors.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find principal")
	}
	if len(principal.Favourites) == 0 {
		return []*entity.Product{}, nil
	}

	approved := true
	products, err := srv.products.List(ctx, repository.ProductFilter{IsApproved: &approved, IDs: principal.Favourites})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favourites")
	}

	return products, nil
}
