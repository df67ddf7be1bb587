package handler

import (
	"net/http"

	"nutrilens/internal/delivery/api/response"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handleVerificationRequest struct {
	CompanyID string `json:"companyId" form:"companyId"`
	Action    string `json:"action" form:"action"`
}

type removeVerificationRequest struct {
	CompanyID string `json:"companyId" form:"companyId"`
}

// VerificationHandler serves the company verification workflow.
type VerificationHandler struct {
	uc usecase.VerificationUsecase
}

// NewVerificationHandler is the constructor for VerificationHandler, injected by Fx.
func NewVerificationHandler(uc usecase.VerificationUsecase) *VerificationHandler {
	return &VerificationHandler{uc: uc}
}

// RequestVerification lets a company ask for verification.
func (h *VerificationHandler) RequestVerification(c echo.Context, principal *entity.Principal) error {
	company, err := h.uc.RequestVerification(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPrincipalView(company), "Verification request sent successfully")
}

func (h *VerificationHandler) ListPendingVerifications(c echo.Context, principal *entity.Principal) error {
	companies, err := h.uc.ListPendingVerifications(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPrincipalViews(companies), "Pending verifications fetched successfully")
}

// HandleVerification applies an admin decision on a pending request.
func (h *VerificationHandler) HandleVerification(c echo.Context, principal *entity.Principal) error {
	var req handleVerificationRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid verification decision")
	}

	company, err := h.uc.HandleVerification(c.Request().Context(), principal, &usecase.HandleVerificationInput{
		CompanyID: req.CompanyID,
		Action:    req.Action,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Company verified successfully"
	if !company.IsVerified() {
		message = "Company verification denied"
	}

	return response.Success(c, http.StatusOK, NewPrincipalView(company), message)
}

func (h *VerificationHandler) ListVerifiedCompanies(c echo.Context, principal *entity.Principal) error {
	companies, err := h.uc.ListVerifiedCompanies(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPrincipalViews(companies), "Verified companies fetched successfully")
}

// RemoveVerification revokes a company's verified status.
func (h *VerificationHandler) RemoveVerification(c echo.Context, principal *entity.Principal) error {
	var req removeVerificationRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid verification removal")
	}

	company, err := h.uc.RemoveVerification(c.Request().Context(), principal, req.CompanyID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewPrincipalView(company), "Company verification removed successfully")
}
