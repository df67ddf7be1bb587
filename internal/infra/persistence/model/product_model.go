package model

import (
	"time"

	"nutrilens/internal/domain/entity"
)

const ProductCollection = "products"

// ProductDocument mirrors a document in the products collection.
type ProductDocument struct {
	ID        string `bson:"_id"`
	ProductID int64  `bson:"productId"`
	CompanyID string `bson:"companyId"`

	Name              string         `bson:"name"`
	Description       string         `bson:"description"`
	Category          string         `bson:"category"`
	NutritionalInfo   map[string]any `bson:"nutritionalInfo"`
	Ingredients       []string       `bson:"ingredients"`
	Tags              []string       `bson:"tags"`
	Certifications    []string       `bson:"certifications"`
	Diseases          []string       `bson:"diseases"`
	ManufacturingDate time.Time      `bson:"manufacturingDate"`
	ExpiryDate        time.Time      `bson:"expiryDate"`
	Price             float64        `bson:"price"`
	PublicRating      float64        `bson:"publicRating"`
	Image             MediaDocument  `bson:"image"`

	IsApproved        bool `bson:"isApproved"`
	ApprovalRequested bool `bson:"approvalRequested"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func FromProduct(p *entity.Product) *ProductDocument {
	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		tags = append(tags, string(tag))
	}

	return &ProductDocument{
		ID:                p.ID.String(),
		ProductID:         p.ProductID,
		CompanyID:         p.CompanyID.String(),
		Name:              p.Name,
		Description:       p.Description,
		Category:          string(p.Category),
		NutritionalInfo:   p.NutritionalInfo,
		Ingredients:       p.Ingredients,
		Tags:              tags,
		Certifications:    p.Certifications,
		Diseases:          p.Diseases,
		ManufacturingDate: p.ManufacturingDate,
		ExpiryDate:        p.ExpiryDate,
		Price:             p.Price,
		PublicRating:      p.PublicRating,
		Image:             FromMedia(p.Image),
		IsApproved:        p.IsApproved,
		ApprovalRequested: p.ApprovalRequested,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (d *ProductDocument) ToEntity() (*entity.Product, error) {
	id, err := parseID("product id", d.ID)
	if err != nil {
		return nil, err
	}
	companyID, err := parseID("company id", d.CompanyID)
	if err != nil {
		return nil, err
	}

	tags := make([]entity.Tag, 0, len(d.Tags))
	for _, tag := range d.Tags {
		tags = append(tags, entity.Tag(tag))
	}

	return &entity.Product{
		ID:                id,
		ProductID:         d.ProductID,
		CompanyID:         companyID,
		Name:              d.Name,
		Description:       d.Description,
		Category:          entity.Category(d.Category),
		NutritionalInfo:   entity.NutritionalInfo(d.NutritionalInfo),
		Ingredients:       d.Ingredients,
		Tags:              tags,
		Certifications:    d.Certifications,
		Diseases:          d.Diseases,
		ManufacturingDate: d.ManufacturingDate.UTC(),
		ExpiryDate:        d.ExpiryDate.UTC(),
		Price:             d.Price,
		PublicRating:      d.PublicRating,
		Image:             d.Image.ToEntity(),
		IsApproved:        d.IsApproved,
		ApprovalRequested: d.ApprovalRequested,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}
