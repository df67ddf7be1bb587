package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	domainerrors "nutrilens/internal/domain/errors"

	"github.com/pkg/errors"
)

// Required product attributes, keyed by their wire names.
const (
	FieldProductID         = "productId"
	FieldName              = "name"
	FieldDescription       = "description"
	FieldCategory          = "category"
	FieldNutritionalInfo   = "nutritionalInfo"
	FieldIngredients       = "ingredients"
	FieldTags              = "tags"
	FieldCertifications    = "certifications"
	FieldManufacturingDate = "manufacturingDate"
	FieldExpiryDate        = "expiryDate"
	FieldPrice             = "price"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseProductID parses a positive numeric product identifier.
func ParseProductID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("%s must be a positive integer", FieldProductID)
	}

	return id, nil
}

// ParseNutritionalInfo decodes a JSON object. A JSON string holding an object is accepted too.
func ParseNutritionalInfo(raw string) (NutritionalInfo, error) {
	text, err := unquoteJSON(raw)
	if err != nil {
		return nil, errors.Errorf("%s must be a JSON object", FieldNutritionalInfo)
	}

	var info map[string]any
	if err := json.Unmarshal([]byte(text), &info); err != nil || info == nil {
		return nil, errors.Errorf("%s must be a JSON object", FieldNutritionalInfo)
	}

	return NutritionalInfo(info), nil
}

// ParseIngredients decodes a non-empty JSON array of non-blank strings.
func ParseIngredients(raw string) ([]string, error) {
	items, err := parseStringList(FieldIngredients, raw)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.Errorf("%s must not be empty", FieldIngredients)
	}

	return items, nil
}

// ParseCertifications decodes a JSON array of strings. It may be empty.
func ParseCertifications(raw string) ([]string, error) {
	return parseStringList(FieldCertifications, raw)
}

// ParseTags decodes a JSON array of tags from the dietary vocabulary.
func ParseTags(raw string) ([]Tag, error) {
	items, err := parseStringList(FieldTags, raw)
	if err != nil {
		return nil, err
	}

	tags := make([]Tag, 0, len(items))
	for _, item := range items {
		tag, ok := LookupTag(item)
		if !ok {
			return nil, errors.Errorf("unknown tag %q", item)
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// ParseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func ParseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, errors.Errorf("%s must be a date (YYYY-MM-DD or RFC 3339)", field)
}

// ParsePrice parses a non-negative price.
func ParsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || price < 0 {
		return 0, errors.Errorf("%s must be a non-negative number", FieldPrice)
	}

	return price, nil
}

// MissingRequiredFields lists the required attributes absent from a registration payload.
func (d ProductDetails) MissingRequiredFields() []domainerrors.FieldError {
	var missing []string
	if d.Name == nil || strings.TrimSpace(*d.Name) == "" {
		missing = append(missing, FieldName)
	}
	if d.Category == nil {
		missing = append(missing, FieldCategory)
	}
	if d.NutritionalInfo == nil {
		missing = append(missing, FieldNutritionalInfo)
	}
	if d.Description == nil || strings.TrimSpace(*d.Description) == "" {
		missing = append(missing, FieldDescription)
	}
	if d.Ingredients == nil {
		missing = append(missing, FieldIngredients)
	}
	if d.ManufacturingDate == nil {
		missing = append(missing, FieldManufacturingDate)
	}
	if d.ExpiryDate == nil {
		missing = append(missing, FieldExpiryDate)
	}
	if d.Price == nil {
		missing = append(missing, FieldPrice)
	}

	fieldErrors := make([]domainerrors.FieldError, 0, len(missing))
	for _, field := range missing {
		fieldErrors = append(fieldErrors, domainerrors.FieldError{Field: field, Message: field + " is required"})
	}

	return fieldErrors
}

// Validate checks the semantic constraints of a complete product.
func (p *Product) Validate() []domainerrors.FieldError {
	var fieldErrors []domainerrors.FieldError
	add := func(field, format string, args ...any) {
		fieldErrors = append(fieldErrors, domainerrors.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(p.Name) == "" {
		add(FieldName, "%s must not be blank", FieldName)
	}
	if strings.TrimSpace(p.Description) == "" {
		add(FieldDescription, "%s must not be blank", FieldDescription)
	}
	if !p.Category.IsValid() {
		add(FieldCategory, "unknown category %q", p.Category)
	}
	if p.NutritionalInfo == nil {
		add(FieldNutritionalInfo, "%s must be a JSON object", FieldNutritionalInfo)
	}
	if len(p.Ingredients) == 0 {
		add(FieldIngredients, "%s must not be empty", FieldIngredients)
	}
	if p.Price < 0 {
		add(FieldPrice, "%s must be a non-negative number", FieldPrice)
	}
	if !p.ManufacturingDate.IsZero() && !p.ExpiryDate.IsZero() && !p.ManufacturingDate.Before(p.ExpiryDate) {
		add(FieldExpiryDate, "%s must be after %s", FieldExpiryDate, FieldManufacturingDate)
	}

	return fieldErrors
}

func parseStringList(field, raw string) ([]string, error) {
	text, err := unquoteJSON(raw)
	if err != nil {
		return nil, errors.Errorf("%s must be a JSON array of strings", field)
	}

	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, errors.Errorf("%s must be a JSON array of strings", field)
	}

	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, errors.Errorf("%s must not contain blank entries", field)
		}
		cleaned = append(cleaned, item)
	}

	return cleaned, nil
}

// unquoteJSON unwraps a JSON string literal that itself contains JSON.
func unquoteJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, `"`) {
		return text, nil
	}

	var inner string
	if err := json.Unmarshal([]byte(text), &inner); err != nil {
		return "", errors.WithStack(err)
	}

	return strings.TrimSpace(inner), nil
}
