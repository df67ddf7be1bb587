// Package response renders the JSON envelopes returned by every API route.
package response

import (
	"net/http"

	domainerrors "nutrilens/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Success    bool         `json:"success"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// FieldError points a message at one request field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, SuccessResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, message string, fieldErrors []domainerrors.FieldError) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	// Field details are only meaningful for client errors
	var errs []FieldError
	if statusCode < http.StatusInternalServerError {
		for _, fe := range fieldErrors {
			errs = append(errs, FieldError{Field: fe.Field, Message: fe.Message})
		}
	}

	return c.JSON(statusCode, ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     errs,
	})
}

// Unauthorized returns a 401 error
func Unauthorized(c echo.Context, message string) error {
	return Error(c, http.StatusUnauthorized, message, nil)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, message string) error {
	return Error(c, http.StatusInternalServerError, message, nil)
}
