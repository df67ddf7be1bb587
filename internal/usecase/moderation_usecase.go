package usecase

import (
	"context"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/service"
)

// HandleVerificationInput is an admin decision on a company's verification request.
type HandleVerificationInput struct {
	CompanyID string
	Action    string
}

// VerificationUsecase governs company verification.
type VerificationUsecase interface {
	RequestVerification(ctx context.Context, actor *entity.Principal) (*entity.Principal, error)
	ListPendingVerifications(ctx context.Context, actor *entity.Principal) ([]*entity.Principal, error)
	HandleVerification(ctx context.Context, actor *entity.Principal, input *HandleVerificationInput) (*entity.Principal, error)
	ListVerifiedCompanies(ctx context.Context, actor *entity.Principal) ([]*entity.Principal, error)
	RemoveVerification(ctx context.Context, actor *entity.Principal, companyID string) (*entity.Principal, error)
}

// ProductForm holds product attributes as submitted, keyed by wire name.
// A missing key means the attribute was not supplied.
type ProductForm map[string]string

// ProductFormFields lists every key a ProductForm may carry.
var ProductFormFields = []string{
	entity.FieldProductID,
	entity.FieldName,
	entity.FieldDescription,
	entity.FieldCategory,
	entity.FieldNutritionalInfo,
	entity.FieldIngredients,
	entity.FieldTags,
	entity.FieldCertifications,
	entity.FieldManufacturingDate,
	entity.FieldExpiryDate,
	entity.FieldPrice,
}

// RegisterProductInput defines a product submission.
type RegisterProductInput struct {
	Form  ProductForm
	Image *service.MediaFile
}

// HandleApprovalInput is an admin decision on a pending product.
// ProductRef is either the numeric productId or the internal id.
type HandleApprovalInput struct {
	ProductRef string
	Action     string
}

// ProductListing is a product shown to moderators together with its company.
type ProductListing struct {
	Product *entity.Product
	Company *entity.Principal
}

// ProductUsecase governs product approval and owner edits.
type ProductUsecase interface {
	RegisterProduct(ctx context.Context, actor *entity.Principal, input *RegisterProductInput) (*entity.Product, error)
	ListPendingApprovals(ctx context.Context, actor *entity.Principal) ([]*ProductListing, error)

	// HandleApproval approves or denies a pending product. A denied product is deleted and returned as it was.
	HandleApproval(ctx context.Context, actor *entity.Principal, input *HandleApprovalInput) (*entity.Product, error)

	ListApprovedProducts(ctx context.Context, actor *entity.Principal) ([]*ProductListing, error)
	RemoveApproval(ctx context.Context, actor *entity.Principal, productRef string) (*entity.Product, error)
	DeleteProduct(ctx context.Context, actor *entity.Principal, productRef string) error

	UpdateDetails(ctx context.Context, actor *entity.Principal, productRef string, form ProductForm) (*entity.Product, error)
	UpdateImage(ctx context.Context, actor *entity.Principal, productRef string, image *service.MediaFile) (*entity.Product, error)

	// ListOwnProducts returns every product of the calling company, in any approval state.
	ListOwnProducts(ctx context.Context, actor *entity.Principal) ([]*entity.Product, error)
}
