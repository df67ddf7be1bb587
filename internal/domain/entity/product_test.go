package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNutritionalInfo(t *testing.T) {
	info, err := ParseNutritionalInfo(`{"calories": 120, "protein": "4g"}`)
	require.NoError(t, err)
	assert.Equal(t, float64(120), info["calories"])

	// double-encoded form values are unwrapped once
	info, err = ParseNutritionalInfo(`"{\"fat\": 3}"`)
	require.NoError(t, err)
	assert.Equal(t, float64(3), info["fat"])

	for _, raw := range []string{`[1,2]`, `null`, `42`, `{broken`, ``} {
		_, err := ParseNutritionalInfo(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseIngredients(t *testing.T) {
	items, err := ParseIngredients(`[" wheat ", "sugar"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"wheat", "sugar"}, items)

	_, err = ParseIngredients(`[]`)
	assert.ErrorContains(t, err, "must not be empty")

	_, err = ParseIngredients(`["salt", "  "]`)
	assert.ErrorContains(t, err, "blank")

	_, err = ParseIngredients(`salt, sugar`)
	assert.Error(t, err)
}

func TestParseTags(t *testing.T) {
	tags, err := ParseTags(`["Vegan", "non-gmo"]`)
	require.NoError(t, err)
	assert.Equal(t, []Tag{TagVegan, TagNonGMO}, tags)

	_, err = ParseTags(`["tasty"]`)
	assert.ErrorContains(t, err, "unknown tag")
}

func TestParseDateAndNumbers(t *testing.T) {
	d, err := ParseDate(FieldExpiryDate, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate(FieldExpiryDate, "01/03/2026")
	assert.Error(t, err)

	id, err := ParseProductID(" 1001 ")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), id)
	_, err = ParseProductID("-4")
	assert.Error(t, err)

	price, err := ParsePrice("49.5")
	require.NoError(t, err)
	assert.InDelta(t, 49.5, price, 1e-9)
	_, err = ParsePrice("-1")
	assert.Error(t, err)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, CategorySnacks, NormalizeCategory("  SNACKS "))
	assert.True(t, NormalizeCategory("Dairy, Bread and Eggs").IsValid())
	assert.False(t, NormalizeCategory("furniture").IsValid())
	assert.Len(t, Categories, 13)
}

func validDetails() ProductDetails {
	name, desc, price := "Oat Biscuits", "Crunchy oats", 3.5
	category := CategoryBiscuits
	mfg := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := mfg.AddDate(0, 6, 0)

	return ProductDetails{
		Name:              &name,
		Description:       &desc,
		Category:          &category,
		NutritionalInfo:   NutritionalInfo{"calories": 90.0},
		Ingredients:       []string{"oats", "sugar"},
		ManufacturingDate: &mfg,
		ExpiryDate:        &exp,
		Price:             &price,
	}
}

func TestProductDetails_MissingRequiredFields(t *testing.T) {
	assert.Empty(t, validDetails().MissingRequiredFields())

	missing := ProductDetails{}.MissingRequiredFields()
	fields := make([]string, 0, len(missing))
	for _, fe := range missing {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{
		FieldName, FieldCategory, FieldNutritionalInfo, FieldDescription,
		FieldIngredients, FieldManufacturingDate, FieldExpiryDate, FieldPrice,
	}, fields)
}

func TestProduct_Validate(t *testing.T) {
	p := NewPendingProduct(1001, uuid.New(), validDetails(), Media{URL: "http://img", FileID: "f1"})
	assert.Empty(t, p.Validate())
	assert.True(t, p.ApprovalRequested)
	assert.False(t, p.IsApproved)

	p.ExpiryDate = p.ManufacturingDate
	issues := p.Validate()
	require.Len(t, issues, 1)
	assert.Equal(t, FieldExpiryDate, issues[0].Field)

	p.ExpiryDate = p.ManufacturingDate.AddDate(1, 0, 0)
	p.Category = "furniture"
	issues = p.Validate()
	require.Len(t, issues, 1)
	assert.Equal(t, FieldCategory, issues[0].Field)
}

func TestProductDetails_ApplyTo(t *testing.T) {
	p := NewPendingProduct(1, uuid.New(), validDetails(), Media{})
	newName := "Oat Cookies"

	ProductDetails{Name: &newName}.ApplyTo(p)
	assert.Equal(t, "Oat Cookies", p.Name)
	assert.Equal(t, "Crunchy oats", p.Description)
	assert.True(t, ProductDetails{}.IsEmpty())
	assert.False(t, ProductDetails{Name: &newName}.IsEmpty())
}
