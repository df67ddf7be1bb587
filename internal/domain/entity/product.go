package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a packaged food item listed by a company.
type Product struct {
	ID        uuid.UUID
	ProductID int64
	CompanyID uuid.UUID

	Name              string
	Description       string
	Category          Category
	NutritionalInfo   NutritionalInfo
	Ingredients       []string
	Tags              []Tag
	Certifications    []string
	Diseases          []string
	ManufacturingDate time.Time
	ExpiryDate        time.Time
	Price             float64
	PublicRating      float64
	Image             Media

	IsApproved        bool
	ApprovalRequested bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NutritionalInfo is a free-form nutrition facts object.
type NutritionalInfo map[string]any

// ProductDetails carries every company-editable attribute of a product.
// A nil pointer or nil slice means the attribute was not supplied.
type ProductDetails struct {
	Name              *string
	Description       *string
	Category          *Category
	NutritionalInfo   NutritionalInfo
	Ingredients       []string
	Tags              []Tag
	Certifications    []string
	ManufacturingDate *time.Time
	ExpiryDate        *time.Time
	Price             *float64
}

// NewPendingProduct builds a product awaiting approval from complete details.
func NewPendingProduct(productID int64, companyID uuid.UUID, details ProductDetails, image Media) *Product {
	now := time.Now().UTC()
	p := &Product{
		ID:                uuid.New(),
		ProductID:         productID,
		CompanyID:         companyID,
		Image:             image,
		ApprovalRequested: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	details.ApplyTo(p)

	return p
}

// ApplyTo copies the supplied attributes onto the product.
func (d ProductDetails) ApplyTo(p *Product) {
	if d.Name != nil {
		p.Name = *d.Name
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.Category != nil {
		p.Category = *d.Category
	}
	if d.NutritionalInfo != nil {
		p.NutritionalInfo = d.NutritionalInfo
	}
	if d.Ingredients != nil {
		p.Ingredients = d.Ingredients
	}
	if d.Tags != nil {
		p.Tags = d.Tags
	}
	if d.Certifications != nil {
		p.Certifications = d.Certifications
	}
	if d.ManufacturingDate != nil {
		p.ManufacturingDate = *d.ManufacturingDate
	}
	if d.ExpiryDate != nil {
		p.ExpiryDate = *d.ExpiryDate
	}
	if d.Price != nil {
		p.Price = *d.Price
	}
}

// IsEmpty reports whether no attribute was supplied.
func (d ProductDetails) IsEmpty() bool {
	return d.Name == nil && d.Description == nil && d.Category == nil && d.NutritionalInfo == nil &&
		d.Ingredients == nil && d.Tags == nil && d.Certifications == nil &&
		d.ManufacturingDate == nil && d.ExpiryDate == nil && d.Price == nil
}
