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

type newsRequest struct {
	Title            *string `json:"title" form:"title"`
	ShortDescription *string `json:"shortDescription" form:"shortDescription"`
	Content          *string `json:"content" form:"content"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// NewsHandler serves admin-published articles.
type NewsHandler struct {
	uc usecase.NewsUsecase
}

// NewNewsHandler is the constructor for NewsHandler, injected by Fx.
func NewNewsHandler(uc usecase.NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// CreateNews publishes an article with its cover image.
func (h *NewsHandler) CreateNews(c echo.Context, principal *entity.Principal) error {
	var req newsRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid news input")
	}
	image, err := readMediaFile(c, NewsImageField)
	if err != nil {
		return errors.WithStack(err)
	}

	news, err := h.uc.CreateNews(c.Request().Context(), principal, &usecase.CreateNewsInput{
		Title:            deref(req.Title),
		ShortDescription: deref(req.ShortDescription),
		Content:          deref(req.Content),
		Image:            image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, NewNewsView(news), "News created successfully")
}

func (h *NewsHandler) ListNews(c echo.Context) error {
	articles, err := h.uc.ListNews(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*NewsView, 0, len(articles))
	for _, n := range articles {
		views = append(views, NewNewsView(n))
	}

	return response.Success(c, http.StatusOK, views, "News fetched successfully")
}

func (h *NewsHandler) GetNews(c echo.Context) error {
	news, err := h.uc.GetNews(c.Request().Context(), pathRef(c, "newsId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewNewsView(news), "News fetched successfully")
}

// UpdateNewsDetails applies partial edits by the article's author.
func (h *NewsHandler) UpdateNewsDetails(c echo.Context, principal *entity.Principal) error {
	var req newsRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid news input")
	}

	news, err := h.uc.UpdateNewsDetails(c.Request().Context(), principal, pathRef(c, "newsId"), entity.NewsDetails{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewNewsView(news), "News details updated successfully")
}

// UpdateNewsImage replaces the cover image.
func (h *NewsHandler) UpdateNewsImage(c echo.Context, principal *entity.Principal) error {
	image, err := readMediaFile(c, NewsImageField)
	if err != nil {
		return errors.WithStack(err)
	}

	news, err := h.uc.UpdateNewsImage(c.Request().Context(), principal, pathRef(c, "newsId"), image)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewNewsView(news), "News image updated successfully")
}
