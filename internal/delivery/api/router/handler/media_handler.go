package handler

import (
	"net/http"
	"path"
	"strings"

	"nutrilens/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MediaHandler streams self-hosted uploads.
type MediaHandler struct {
	reader service.MediaReader
}

// NewMediaHandler is the constructor for MediaHandler. reader may be nil when images are hosted elsewhere.
func NewMediaHandler(reader service.MediaReader) *MediaHandler {
	return &MediaHandler{reader: reader}
}

// Enabled reports whether this process serves uploaded files.
func (h *MediaHandler) Enabled() bool {
	return h.reader != nil
}

// ServeMedia writes the stored file named by the wildcard path.
func (h *MediaHandler) ServeMedia(c echo.Context) error {
	fileID := strings.TrimPrefix(path.Clean("/"+c.Param("*")), "/")
	if fileID == "" {
		return echo.NewHTTPError(http.StatusNotFound, "Media not found")
	}

	body, contentType, err := h.reader.Open(c.Request().Context(), fileID)
	if errors.Is(err, service.ErrMediaNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Media not found")
	}
	if err != nil {
		return errors.WithStack(err)
	}
	defer body.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")

	return c.Stream(http.StatusOK, contentType, body)
}
