package impl

import (
	"context"
	"log/slog"
	"strings"

	"nutrilens/config"
	deliverycontext "nutrilens/internal/delivery/context"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/policy"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const productImageField = "productImage"

type productService struct {
	txManager  repository.TransactionManager
	products   repository.ProductRepository
	principals repository.PrincipalRepository
	media      *mediaHandler
	recorder   *decisionRecorder
	logger     *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	Products   repository.ProductRepository
	Principals repository.PrincipalRepository
	MediaStore service.MediaStore
	Publisher  service.EventPublisher
	Metrics    service.MetricsRecorder
	Config     *config.Config
	Logger     *slog.Logger
}

func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:  params.TxManager,
		products:   params.Products,
		principals: params.Principals,
		media:      newMediaHandler(params.MediaStore, params.Metrics, params.Config),
		recorder:   &decisionRecorder{publisher: params.Publisher, metrics: params.Metrics},
		logger:     params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterProduct submits a product for approval. It joins the company's list only once approved.
func (srv *productService) RegisterProduct(ctx context.Context, actor *entity.Principal, input *usecase.RegisterProductInput) (*entity.Product, error) {
	if err := policy.RegisterProduct(actor).Err(); err != nil {
		return nil, err
	}

	rawID := strings.TrimSpace(input.Form[entity.FieldProductID])
	if rawID == "" {
		return nil, domainerrors.NewValidationError(entity.FieldProductID, entity.FieldProductID+" is required")
	}
	productID, err := entity.ParseProductID(rawID)
	if err != nil {
		return nil, domainerrors.NewValidationError(entity.FieldProductID, err.Error())
	}

	exists, err := srv.products.ExistsByProductID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check product id")
	}
	if exists {
		return nil, domainerrors.ErrProductIDTaken
	}

	details, fieldErrors := parseProductDetails(input.Form)
	fieldErrors = append(missingUnlessMalformed(details, fieldErrors), fieldErrors...)
	if len(fieldErrors) > 0 {
		return nil, invalidProduct(fieldErrors)
	}

	product := entity.NewPendingProduct(productID, actor.ID, details, entity.Media{})
	if fieldErrors := product.Validate(); len(fieldErrors) > 0 {
		return nil, invalidProduct(fieldErrors)
	}

	if err := srv.media.validate(productImageField, input.Image); err != nil {
		return nil, err
	}
	if product.Image, err = srv.media.upload(ctx, srv.log(ctx), service.FolderProducts, input.Image); err != nil {
		return nil, err
	}

	if err := srv.products.Create(ctx, product); err != nil {
		srv.media.discard(ctx, srv.log(ctx), product.Image)
		if errors.Is(err, repository.ErrDuplicateProductID) {
			return nil, domainerrors.ErrProductIDTaken
		}

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product submitted for approval",
		slog.String("product_id", product.ID.String()),
		slog.Int64("product_number", product.ProductID),
		slog.String("company_id", actor.ID.String()),
	)
	srv.recorder.record(ctx, srv.log(ctx), workflowProduct, service.EventProductSubmitted, product.ID, actor.ID, "request")

	return product, nil
}

func (srv *productService) ListPendingApprovals(ctx context.Context, actor *entity.Principal) ([]*usecase.ProductListing, error) {
	requested := true

	return srv.listForModeration(ctx, actor, repository.ProductFilter{ApprovalRequested: &requested})
}

func (srv *productService) ListApprovedProducts(ctx context.Context, actor *entity.Principal) ([]*usecase.ProductListing, error) {
	approved := true

	return srv.listForModeration(ctx, actor, repository.ProductFilter{IsApproved: &approved})
}

func (srv *productService) listForModeration(ctx context.Context, actor *entity.Principal, filter repository.ProductFilter) ([]*usecase.ProductListing, error) {
	if err := policy.Moderate(actor).Err(); err != nil {
		return nil, err
	}

	products, err := srv.products.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	seen := make(map[uuid.UUID]bool, len(products))
	companyIDs := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		if !seen[p.CompanyID] {
			seen[p.CompanyID] = true
			companyIDs = append(companyIDs, p.CompanyID)
		}
	}

	companies, err := srv.principals.FindByIDs(ctx, companyIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load companies")
	}
	byID := make(map[uuid.UUID]*entity.Principal, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	listings := make([]*usecase.ProductListing, 0, len(products))
	for _, p := range products {
		listings = append(listings, &usecase.ProductListing{Product: p, Company: byID[p.CompanyID]})
	}

	return listings, nil
}

// HandleApproval applies an admin decision. Approval flips the flags and lists the product on its
// company in one transaction. Denial deletes the pending product and then releases its image.
func (srv *productService) HandleApproval(ctx context.Context, actor *entity.Principal, input *usecase.HandleApprovalInput) (*entity.Product, error) {
	if err := policy.Moderate(actor).Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ProductRef) == "" {
		return nil, domainerrors.NewValidationError(entity.FieldProductID, entity.FieldProductID+" is required")
	}
	action, err := parseAction(input.Action)
	if err != nil {
		return nil, err
	}

	product, err := findProduct(ctx, srv.products, input.ProductRef)
	if err != nil {
		return nil, err
	}
	if !product.ApprovalRequested {
		return nil, errNoPendingApproval
	}

	var decided *entity.Product
	if action == entity.ActionApprove {
		decided, err = srv.approve(ctx, product)
	} else {
		decided, err = srv.deny(ctx, product)
	}
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Product approval handled",
		slog.String("product_id", product.ID.String()),
		slog.String("action", string(action)),
	)
	srv.recorder.record(ctx, srv.log(ctx), workflowProduct, service.EventProductDecided, product.ID, actor.ID, string(action))

	return decided, nil
}

func (srv *productService) approve(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var (
		approved *entity.Product
		listed   bool
	)
	err := srv.txManager.Execute(ctx, func(ctx context.Context, repos repository.RepositoryFactory) error {
		var err error
		approved, err = repos.Products().ApplyApprovalTransition(ctx, product.ID, entity.ApproveProductGuard, entity.ApproveProductChange)
		if err != nil {
			return productWriteError(err, errNoPendingApproval)
		}

		if err := repos.Principals().AddProduct(ctx, approved.CompanyID, approved.ID); err != nil {
			if errors.Is(err, repository.ErrPrincipalNotFound) {
				return domainerrors.ErrCompanyNotFound
			}

			return errors.Wrap(err, "failed to list product on company")
		}
		listed = true

		return nil
	})
	if err != nil {
		if approved != nil && !listed {
			srv.revertApproval(ctx, approved.ID)
		}

		return nil, err
	}

	return approved, nil
}

// revertApproval undoes an approval whose company listing failed. Inside a real transaction the
// rollback has already done so and the guard no longer matches.
func (srv *productService) revertApproval(ctx context.Context, id uuid.UUID) {
	_, err := srv.products.ApplyApprovalTransition(ctx, id, entity.RevertApprovalGuard, entity.RevertApprovalChange)
	switch {
	case err == nil:
		srv.log(ctx).Warn("Reverted product approval after listing failed", slog.String("product_id", id.String()))
	case errors.Is(err, repository.ErrTransitionRejected), errors.Is(err, repository.ErrProductNotFound):
	default:
		srv.log(ctx).Error("Failed to revert product approval",
			slog.String("product_id", id.String()),
			slog.Any("error", err),
		)
	}
}

// deny deletes the product while it is still pending, then releases the image of the deleted record.
func (srv *productService) deny(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	denied, err := srv.products.DeleteWhere(ctx, product.ID, entity.PendingProductGuard)
	if err != nil {
		return nil, productWriteError(err, errNoPendingApproval)
	}
	srv.media.discard(ctx, srv.log(ctx), denied.Image)

	return denied, nil
}

// RemoveApproval deletes an approved product and unlists it from its company.
func (srv *productService) RemoveApproval(ctx context.Context, actor *entity.Principal, productRef string) (*entity.Product, error) {
	if err := policy.Moderate(actor).Err(); err != nil {
		return nil, err
	}

	product, err := findProduct(ctx, srv.products, productRef)
	if err != nil {
		return nil, err
	}
	if !product.IsApproved {
		return nil, errNotApproved
	}

	removed, err := srv.deleteListed(ctx, product, entity.ApprovedProductGuard, errNotApproved)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Product approval removed", slog.String("product_id", product.ID.String()))
	srv.recorder.record(ctx, srv.log(ctx), workflowProduct, service.EventProductApprovalRemove, product.ID, actor.ID, "remove")

	return removed, nil
}

// DeleteProduct lets the verified owner remove its product in any approval state.
func (srv *productService) DeleteProduct(ctx context.Context, actor *entity.Principal, productRef string) error {
	product, err := srv.findManaged(ctx, actor, productRef)
	if err != nil {
		return err
	}

	if _, err := srv.deleteListed(ctx, product, entity.OwnedProductGuard(actor.ID), errNotOwner); err != nil {
		return err
	}

	srv.log(ctx).Info("Product deleted by owner", slog.String("product_id", product.ID.String()))
	srv.recorder.record(ctx, srv.log(ctx), workflowProduct, service.EventProductDeleted, product.ID, actor.ID, "delete")

	return nil
}

// deleteListed deletes the product, its reviews and its company listing together. The image is
// released only once the guarded delete has committed.
func (srv *productService) deleteListed(ctx context.Context, product *entity.Product, guard entity.ApprovalGuard, rejected error) (*entity.Product, error) {
	var deleted *entity.Product
	err := srv.txManager.Execute(ctx, func(ctx context.Context, repos repository.RepositoryFactory) error {
		var err error
		deleted, err = repos.Products().DeleteWhere(ctx, product.ID, guard)
		if err != nil {
			return productWriteError(err, rejected)
		}

		err = repos.Principals().RemoveProduct(ctx, deleted.CompanyID, deleted.ID)
		if err != nil && !errors.Is(err, repository.ErrPrincipalNotFound) {
			return errors.Wrap(err, "failed to unlist product")
		}

		return errors.Wrap(repos.Reviews().DeleteByProduct(ctx, deleted.ID), "failed to delete reviews")
	})
	if err != nil {
		return nil, err
	}
	srv.media.discard(ctx, srv.log(ctx), deleted.Image)

	return deleted, nil
}

// UpdateDetails applies a partial edit. The approval state is left as it is.
func (srv *productService) UpdateDetails(ctx context.Context, actor *entity.Principal, productRef string, form usecase.ProductForm) (*entity.Product, error) {
	product, err := srv.findManaged(ctx, actor, productRef)
	if err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(form[entity.FieldProductID]); raw != "" {
		if id, err := entity.ParseProductID(raw); err != nil || id != product.ProductID {
			return nil, domainerrors.NewValidationError(entity.FieldProductID, entity.FieldProductID+" cannot be changed")
		}
	}

	details, fieldErrors := parseProductDetails(form)
	if len(fieldErrors) > 0 {
		return nil, invalidProduct(fieldErrors)
	}
	if details.IsEmpty() {
		return nil, domainerrors.ErrValidation.WithMessage("No product details provided")
	}

	updated := *product
	details.ApplyTo(&updated)
	if fieldErrors := updated.Validate(); len(fieldErrors) > 0 {
		return nil, invalidProduct(fieldErrors)
	}

	if err := srv.products.UpdateDetails(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.log(ctx).Info("Product details updated", slog.String("product_id", product.ID.String()))

	return &updated, nil
}

// UpdateImage swaps the product image. The previous file is released on a best-effort basis.
func (srv *productService) UpdateImage(ctx context.Context, actor *entity.Principal, productRef string, image *service.MediaFile) (*entity.Product, error) {
	product, err := srv.findManaged(ctx, actor, productRef)
	if err != nil {
		return nil, err
	}
	if err := srv.media.validate(productImageField, image); err != nil {
		return nil, err
	}

	uploaded, err := srv.media.upload(ctx, srv.log(ctx), service.FolderProducts, image)
	if err != nil {
		return nil, err
	}

	if err := srv.products.UpdateImage(ctx, product.ID, uploaded); err != nil {
		srv.media.discard(ctx, srv.log(ctx), uploaded)
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product image")
	}
	srv.media.discard(ctx, srv.log(ctx), product.Image)

	updated := *product
	updated.Image = uploaded

	return &updated, nil
}

func (srv *productService) ListOwnProducts(ctx context.Context, actor *entity.Principal) ([]*entity.Product, error) {
	if err := policy.ListOwnProducts(actor).Err(); err != nil {
		return nil, err
	}

	products, err := srv.products.List(ctx, repository.ProductFilter{CompanyID: &actor.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list company products")
	}

	return products, nil
}

// findManaged checks the product rights before and after resolving the product.
func (srv *productService) findManaged(ctx context.Context, actor *entity.Principal, productRef string) (*entity.Product, error) {
	if err := policy.RegisterProduct(actor).Err(); err != nil {
		return nil, err
	}

	product, err := findProduct(ctx, srv.products, productRef)
	if err != nil {
		return nil, err
	}
	if err := policy.ManageProduct(actor, product).Err(); err != nil {
		return nil, err
	}

	return product, nil
}

var (
	errNoPendingApproval = domainerrors.ErrInvalidState.WithMessage("Product has no pending approval request")
	errNotApproved       = domainerrors.ErrInvalidState.WithMessage("Product is not approved")
	errNotOwner          = domainerrors.ErrForbidden.WithMessage("You can only manage your own products")
)

// missingUnlessMalformed lists absent required attributes, skipping those already reported as malformed.
func missingUnlessMalformed(details entity.ProductDetails, malformed []domainerrors.FieldError) []domainerrors.FieldError {
	reported := make(map[string]bool, len(malformed))
	for _, fe := range malformed {
		reported[fe.Field] = true
	}

	var missing []domainerrors.FieldError
	for _, fe := range details.MissingRequiredFields() {
		if !reported[fe.Field] {
			missing = append(missing, fe)
		}
	}

	return missing
}

// productWriteError maps a guarded write failure. rejected is returned when the guard no longer held.
func productWriteError(err, rejected error) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return domainerrors.ErrProductNotFound
	case errors.Is(err, repository.ErrTransitionRejected):
		return rejected
	default:
		return errors.Wrap(err, "failed to write product")
	}
}
