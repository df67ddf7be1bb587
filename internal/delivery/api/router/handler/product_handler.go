package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"nutrilens/internal/delivery/api/response"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Multipart fields holding product and article images.
const (
	ProductImageField = "productImage"
	NewsImageField    = "newsImage"
)

// productRef accepts a product reference as a JSON string or number.
type productRef string

// UnmarshalJSON implements json.Unmarshaler.
func (r *productRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = productRef(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("productId must be a string or a number")
	}
	*r = productRef(n.String())

	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form values.
func (r *productRef) UnmarshalParam(param string) error {
	*r = productRef(strings.TrimSpace(param))
	return nil
}

type handleApprovalRequest struct {
	ProductID productRef `json:"productId" form:"productId"`
	Action    string     `json:"action" form:"action"`
}

type removeApprovalRequest struct {
	ProductID productRef `json:"productId" form:"productId"`
}

// ProductHandler serves product registration, approval and owner edits.
type ProductHandler struct {
	uc usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// RegisterProduct submits a new product for approval.
func (h *ProductHandler) RegisterProduct(c echo.Context, principal *entity.Principal) error {
	form, err := readProductForm(c)
	if err != nil {
		return errors.WithStack(err)
	}
	image, err := readMediaFile(c, ProductImageField)
	if err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.RegisterProduct(c.Request().Context(), principal, &usecase.RegisterProductInput{
		Form:  form,
		Image: image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, NewProductView(product), "Product registered and sent for approval")
}

func (h *ProductHandler) ListPendingApprovals(c echo.Context, principal *entity.Principal) error {
	listings, err := h.uc.ListPendingApprovals(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewProductListingViews(listings), "Pending approvals fetched successfully")
}

// HandleApproval applies an admin decision on a pending product.
func (h *ProductHandler) HandleApproval(c echo.Context, principal *entity.Principal) error {
	var req handleApprovalRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid approval decision")
	}

	product, err := h.uc.HandleApproval(c.Request().Context(), principal, &usecase.HandleApprovalInput{
		ProductRef: string(req.ProductID),
		Action:     req.Action,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Product approved successfully"
	if !product.IsApproved {
		message = "Product denied and removed"
	}

	return response.Success(c, http.StatusOK, NewProductView(product), message)
}

func (h *ProductHandler) ListApprovedProducts(c echo.Context, principal *entity.Principal) error {
	listings, err := h.uc.ListApprovedProducts(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewProductListingViews(listings), "Approved products fetched successfully")
}

// RemoveApproval deletes an approved product from the catalog.
func (h *ProductHandler) RemoveApproval(c echo.Context, principal *entity.Principal) error {
	var req removeApprovalRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid approval removal")
	}

	product, err := h.uc.RemoveApproval(c.Request().Context(), principal, string(req.ProductID))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewProductView(product), "Product approval removed successfully")
}

// DeleteProduct lets the owning company delete its product.
func (h *ProductHandler) DeleteProduct(c echo.Context, principal *entity.Principal) error {
	if err := h.uc.DeleteProduct(c.Request().Context(), principal, pathRef(c, "productId")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{}, "Product deleted successfully")
}

// UpdateDetails applies partial attribute edits.
func (h *ProductHandler) UpdateDetails(c echo.Context, principal *entity.Principal) error {
	form, err := readProductForm(c)
	if err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.UpdateDetails(c.Request().Context(), principal, pathRef(c, "productId"), form)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewProductView(product), "Product details updated successfully")
}

// UpdateImage replaces the product image.
func (h *ProductHandler) UpdateImage(c echo.Context, principal *entity.Principal) error {
	image, err := readMediaFile(c, ProductImageField)
	if err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.UpdateImage(c.Request().Context(), principal, pathRef(c, "productId"), image)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewProductView(product), "Product image updated successfully")
}

// CatalogHandler serves the public product catalog.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListProducts returns approved products, optionally filtered by category.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListApproved(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewProductViews(products), "Products fetched successfully")
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProduct(c.Request().Context(), pathRef(c, "productId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewProductView(product), "Product fetched successfully")
}

// RateProduct scores the product and returns the stored rating.
func (h *CatalogHandler) RateProduct(c echo.Context) error {
	product, err := h.uc.RateProduct(c.Request().Context(), pathRef(c, "productId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &RatingView{
		ProductID:        product.ProductID,
		Rating:           product.PublicRating,
		PredictedDisease: nonNilStrings(product.Diseases),
	}, "Product rating fetched successfully")
}

// ProductQRCode writes the label QR code as a PNG.
func (h *CatalogHandler) ProductQRCode(c echo.Context) error {
	png, err := h.uc.ProductQRCode(c.Request().Context(), pathRef(c, "productId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
