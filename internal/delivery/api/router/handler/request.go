package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxMultipartMemory bounds the part of a multipart body held in memory before spilling to disk.
const maxMultipartMemory = 8 << 20

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

func isForm(c echo.Context) bool {
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	return strings.HasPrefix(contentType, echo.MIMEMultipartForm) ||
		strings.HasPrefix(contentType, echo.MIMEApplicationForm)
}

// readMediaFile loads the named multipart file. An absent file yields nil so the use case can report it.
func readMediaFile(c echo.Context, field string) (*service.MediaFile, error) {
	if !isMultipart(c) {
		return nil, nil
	}

	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.NewValidationError(field, "Invalid multipart upload")
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded file")
	}

	contentType := header.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &service.MediaFile{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// readProductForm collects product attributes from form values or a JSON object body.
// Structured JSON values are kept in their JSON text form for the entity parsers.
func readProductForm(c echo.Context) (usecase.ProductForm, error) {
	form := usecase.ProductForm{}

	if isForm(c) {
		if isMultipart(c) {
			if err := c.Request().ParseMultipartForm(maxMultipartMemory); err != nil {
				return nil, domainerrors.ErrValidation.WithMessage("Invalid multipart form")
			}
		}
		values, err := c.FormParams()
		if err != nil {
			return nil, domainerrors.ErrValidation.WithMessage("Invalid form body")
		}
		for _, field := range usecase.ProductFormFields {
			if vs, ok := values[field]; ok && len(vs) > 0 {
				form[field] = vs[0]
			}
		}

		return form, nil
	}

	if c.Request().ContentLength == 0 {
		return form, nil
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return nil, domainerrors.ErrValidation.WithMessage("Request body must be a JSON object")
	}
	for _, field := range usecase.ProductFormFields {
		raw, ok := body[field]
		if !ok {
			continue
		}
		form[field] = jsonFormValue(raw)
	}

	return form, nil
}

// jsonFormValue unwraps JSON strings and leaves every other value as JSON text.
func jsonFormValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return strings.TrimSpace(string(raw))
}

// pathRef returns a trimmed path parameter.
func pathRef(c echo.Context, name string) string {
	return strings.TrimSpace(c.Param(name))
}
