package handler

import (
	"net/http"
	"strings"
	"time"

	"nutrilens/internal/delivery/api/response"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AvatarField is the multipart field holding a new avatar.
const AvatarField = "avatar"

type updateAccountRequest struct {
	FullName              *string  `json:"fullName"`
	Mobile                *string  `json:"mobile"`
	Address               *string  `json:"address"`
	Country               *string  `json:"country"`
	DOB                   *string  `json:"dob"`
	Weight                *float64 `json:"weight"`
	Height                *float64 `json:"height"`
	Gender                *bool    `json:"gender"`
	IsVeg                 *bool    `json:"isVeg"`
	CompanyRegistrationNo *string  `json:"companyRegistrationNo"`
	GSTNo                 *string  `json:"gstNo"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ProfileHandler serves self-service account endpoints.
type ProfileHandler struct {
	uc       usecase.ProfileUsecase
	products usecase.ProductUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, products usecase.ProductUsecase) *ProfileHandler {
	return &ProfileHandler{
		uc:       uc,
		products: products,
	}
}

// GetProfile returns the calling principal.
func (h *ProfileHandler) GetProfile(c echo.Context, principal *entity.Principal) error {
	return response.Success(c, http.StatusOK, NewPrincipalView(principal), "User profile fetched successfully")
}

// GetPublicProfile returns the public view of any principal.
func (h *ProfileHandler) GetPublicProfile(c echo.Context) error {
	id, err := uuid.Parse(pathRef(c, "id"))
	if err != nil {
		return domainerrors.NewValidationError("id", "id must be a valid id")
	}

	principal, err := h.uc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPublicPrincipalView(principal), "User fetched successfully")
}

// UpdateAccount applies partial profile edits.
func (h *ProfileHandler) UpdateAccount(c echo.Context, principal *entity.Principal) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid account details")
	}

	input := &usecase.UpdateAccountInput{
		FullName:              req.FullName,
		Mobile:                req.Mobile,
		Address:               req.Address,
		Country:               req.Country,
		Weight:                req.Weight,
		Height:                req.Height,
		Gender:                req.Gender,
		IsVeg:                 req.IsVeg,
		CompanyRegistrationNo: req.CompanyRegistrationNo,
		GSTNo:                 req.GSTNo,
	}
	if req.DOB != nil && strings.TrimSpace(*req.DOB) != "" {
		dob, err := entity.ParseDate("dob", *req.DOB)
		if err != nil {
			return domainerrors.NewValidationError("dob", err.Error())
		}
		input.DOB = &dob
	}

	updated, err := h.uc.UpdateAccount(c.Request().Context(), principal, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPrincipalView(updated), "Account details updated successfully")
}

// ChangePassword replaces the password after checking the old one.
func (h *ProfileHandler) ChangePassword(c echo.Context, principal *entity.Principal) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid password input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.ChangePassword(c.Request().Context(), principal, &usecase.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{}, "Password changed successfully")
}

// UpdateAvatar replaces the avatar with the uploaded image.
func (h *ProfileHandler) UpdateAvatar(c echo.Context, principal *entity.Principal) error {
	file, err := readMediaFile(c, AvatarField)
	if err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.uc.UpdateAvatar(c.Request().Context(), principal, file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPrincipalView(updated), "Avatar updated successfully")
}

// ListOwnProducts returns every product of the calling company.
func (h *ProfileHandler) ListOwnProducts(c echo.Context, principal *entity.Principal) error {
	products, err := h.products.ListOwnProducts(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewProductViews(products), "Products fetched successfully")
}

// FavouriteHandler serves a user's saved products.
type FavouriteHandler struct {
	uc usecase.FavouriteUsecase
}

// NewFavouriteHandler is the constructor for FavouriteHandler, injected by Fx.
func NewFavouriteHandler(uc usecase.FavouriteUsecase) *FavouriteHandler {
	return &FavouriteHandler{uc: uc}
}

func (h *FavouriteHandler) AddFavourite(c echo.Context, principal *entity.Principal) error {
	if err := h.uc.AddFavourite(c.Request().Context(), principal, pathRef(c, "productId")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{}, "Product added to favourites")
}

func (h *FavouriteHandler) RemoveFavourite(c echo.Context, principal *entity.Principal) error {
	if err := h.uc.RemoveFavourite(c.Request().Context(), principal, pathRef(c, "productId")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{}, "Product removed from favourites")
}

func (h *FavouriteHandler) ListFavourites(c echo.Context, principal *entity.Principal) error {
	products, err := h.uc.ListFavourites(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewProductViews(products), "Favourites fetched successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, "Service is healthy")
}
