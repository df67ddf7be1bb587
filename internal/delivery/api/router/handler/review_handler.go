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

type createReviewRequest struct {
	Comment string `json:"comment" form:"comment" validate:"required"`
}

// ReviewHandler serves product reviews.
type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) CreateReview(c echo.Context, principal *entity.Principal) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid review input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.uc.CreateReview(c.Request().Context(), principal, pathRef(c, "productId"), req.Comment)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, NewReviewView(review), "Review added successfully")
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.uc.ListReviews(c.Request().Context(), pathRef(c, "productId"))
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, NewReviewView(r))
	}

	return response.Success(c, http.StatusOK, views, "Reviews fetched successfully")
}

func (h *ReviewHandler) Like(c echo.Context, principal *entity.Principal) error {
	return h.react(c, principal, entity.ReactionLike)
}

func (h *ReviewHandler) Dislike(c echo.Context, principal *entity.Principal) error {
	return h.react(c, principal, entity.ReactionDislike)
}

func (h *ReviewHandler) react(c echo.Context, principal *entity.Principal, reaction entity.ReviewReaction) error {
	review, err := h.uc.React(c.Request().Context(), principal, pathRef(c, "reviewId"), reaction)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewReviewView(review), "Review updated successfully")
}
