package impl

import (
	"strings"

	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/usecase"
)

// parseProductDetails turns submitted strings into typed attributes once, collecting every malformed field.
// Blank values count as not supplied.
func parseProductDetails(form usecase.ProductForm) (entity.ProductDetails, []domainerrors.FieldError) {
	var (
		details     entity.ProductDetails
		fieldErrors []domainerrors.FieldError
	)
	fail := func(field string, err error) {
		fieldErrors = append(fieldErrors, domainerrors.FieldError{Field: field, Message: err.Error()})
	}

	for _, field := range usecase.ProductFormFields {
		raw, ok := form[field]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}

		switch field {
		case entity.FieldName:
			name := strings.TrimSpace(raw)
			details.Name = &name
		case entity.FieldDescription:
			description := strings.TrimSpace(raw)
			details.Description = &description
		case entity.FieldCategory:
			category := entity.NormalizeCategory(raw)
			if !category.IsValid() {
				fieldErrors = append(fieldErrors, domainerrors.FieldError{Field: field, Message: "unknown category " + raw})
				continue
			}
			details.Category = &category
		case entity.FieldNutritionalInfo:
			info, err := entity.ParseNutritionalInfo(raw)
			if err != nil {
				fail(field, err)
				continue
			}
			details.NutritionalInfo = info
		case entity.FieldIngredients:
			ingredients, err := entity.ParseIngredients(raw)
			if err != nil {
				fail(field, err)
				continue
			}
			details.Ingredients = ingredients
		case entity.FieldTags:
			tags, err := entity.ParseTags(raw)
			if err != nil {
				fail(field, err)
				continue
			}
			details.Tags = tags
		case entity.FieldCertifications:
			certifications, err := entity.ParseCertifications(raw)
			if err != nil {
				fail(field, err)
				continue
			}
			details.Certifications = certifications
		case entity.FieldManufacturingDate, entity.FieldExpiryDate:
			date, err := entity.ParseDate(field, raw)
			if err != nil {
				fail(field, err)
				continue
			}
			if field == entity.FieldManufacturingDate {
				details.ManufacturingDate = &date
			} else {
				details.ExpiryDate = &date
			}
		case entity.FieldPrice:
			price, err := entity.ParsePrice(raw)
			if err != nil {
				fail(field, err)
				continue
			}
			details.Price = &price
		}
	}

	return details, fieldErrors
}

// invalidProduct wraps field failures into a single ValidationError.
func invalidProduct(fieldErrors []domainerrors.FieldError) error {
	return domainerrors.ErrValidation.WithMessage(fieldErrors[0].Message).WithFieldErrors(fieldErrors...)
}
