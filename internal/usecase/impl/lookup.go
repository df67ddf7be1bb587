package impl

import (
	"context"
	"strings"

	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// findProduct resolves either a numeric productId or an internal id.
func findProduct(ctx context.Context, products repository.ProductRepository, ref string) (*entity.Product, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domainerrors.NewValidationError(entity.FieldProductID, entity.FieldProductID+" is required")
	}

	var (
		product *entity.Product
		err     error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		product, err = products.FindByID(ctx, id)
	} else {
		productID, parseErr := entity.ParseProductID(ref)
		if parseErr != nil {
			return nil, domainerrors.NewValidationError(entity.FieldProductID, parseErr.Error())
		}
		product, err = products.FindByProductID(ctx, productID)
	}

	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// parseID parses a path or body identifier, reporting a ValidationError against field.
func parseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, domainerrors.NewValidationError(field, field+" is required")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerrors.NewValidationError(field, field+" must be a valid id")
	}

	return id, nil
}

// requiredFields takes field/value pairs and reports every blank value in order.
func requiredFields(pairs ...string) []domainerrors.FieldError {
	var missing []domainerrors.FieldError
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, domainerrors.FieldError{Field: pairs[i], Message: pairs[i] + " is required"})
		}
	}

	return missing
}

func parseAction(raw string) (entity.ModerationAction, error) {
	action, err := entity.ParseModerationAction(raw)
	if err != nil {
		return "", domainerrors.NewValidationError("action", err.Error())
	}

	return action, nil
}
