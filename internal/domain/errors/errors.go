package errors

import (
	"net/http"

	"nutrilens/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
	FieldErrors() []FieldError
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// BaseError is a basic error structure that implements the AppError interface.
// Errors derived from the same sentinel share an error code and match it with errors.Is.
type BaseError struct {
	httpCode    int
	errorCode   string
	message     string
	details     string
	fieldErrors []FieldError
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same error code.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// FieldErrors returns per-field validation failures, if any
func (e *BaseError) FieldErrors() []FieldError {
	return e.fieldErrors
}

// WithMessage returns a copy of the error with a different user-facing message
func (e *BaseError) WithMessage(message string) *BaseError {
	clone := *e
	clone.message = message

	return &clone
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	clone := *e
	clone.details = details

	return &clone
}

// WithFieldErrors attaches per-field validation failures
func (e *BaseError) WithFieldErrors(fieldErrors ...FieldError) *BaseError {
	clone := *e
	clone.fieldErrors = append([]FieldError(nil), fieldErrors...)

	return &clone
}

// Error kinds
var (
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"Invalid input",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Unauthorized request",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource already exists",
		"",
	)

	ErrInvalidState = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATE",
		"Operation not allowed in the current state",
		"",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// Commonly used messages
var (
	ErrInvalidCredentials  = ErrUnauthorized.WithMessage("Invalid user credentials")
	ErrNoToken             = ErrUnauthorized.WithMessage("Unauthorized request: no token provided")
	ErrInvalidToken        = ErrUnauthorized.WithMessage("Invalid or expired access token")
	ErrRefreshTokenInvalid = ErrUnauthorized.WithMessage("Invalid or expired refresh token")
	ErrPrincipalNotFound   = ErrNotFound.WithMessage("User not found")
	ErrCompanyNotFound     = ErrNotFound.WithMessage("Company not found")
	ErrProductNotFound     = ErrNotFound.WithMessage("Product not found")
	ErrNewsNotFound        = ErrNotFound.WithMessage("News not found")
	ErrReviewNotFound      = ErrNotFound.WithMessage("Review not found")
	ErrUserAlreadyExists   = ErrConflict.WithMessage("User with this email or username already exists")
	ErrProductIDTaken      = ErrConflict.WithMessage("Product with this productId already exists")
	ErrMediaUpload         = ErrInternal.WithMessage("Failed to upload image")
	ErrScoringFailed       = ErrInternal.WithMessage("Failed to fetch product rating")
)

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *BaseError {
	return ErrValidation.WithMessage(message).WithFieldErrors(FieldError{Field: field, Message: message})
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// FieldErrors is always empty for database errors
func (e *DatabaseExecuteError) FieldErrors() []FieldError {
	return nil
}
