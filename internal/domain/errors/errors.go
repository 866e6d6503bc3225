// Package errors defines the application-facing error taxonomy. Every
// failure surfaced to a caller is an AppError carrying a stable machine
// code, an HTTP status and a human-readable message.
package errors

import (
	"net/http"

	"soko/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
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

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches errors by business code, so copies produced by WithDetails
// still compare equal to their predefined sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && e.errorCode == other.errorCode
}

// Predefined error types
var (
	// Listing validation errors, one per failing check so clients can
	// address the first failure directly.
	ErrTitleTooShort = NewBaseError(
		http.StatusBadRequest,
		"TITLE_TOO_SHORT",
		"Title must be at least 3 characters",
		"",
	)

	ErrDescriptionTooShort = NewBaseError(
		http.StatusBadRequest,
		"DESCRIPTION_TOO_SHORT",
		"Description must be at least 10 characters",
		"",
	)

	ErrSellerPhoneRequired = NewBaseError(
		http.StatusBadRequest,
		"SELLER_PHONE_REQUIRED",
		"Seller phone number is required",
		"",
	)

	ErrCategoryRequired = NewBaseError(
		http.StatusBadRequest,
		"CATEGORY_REQUIRED",
		"Category is required",
		"",
	)

	ErrLocationRequired = NewBaseError(
		http.StatusBadRequest,
		"LOCATION_REQUIRED",
		"Location is required",
		"",
	)

	ErrImagesRequired = NewBaseError(
		http.StatusBadRequest,
		"IMAGES_REQUIRED",
		"At least one image is required",
		"",
	)

	ErrPriceInvalid = NewBaseError(
		http.StatusBadRequest,
		"PRICE_INVALID",
		"Price must be zero or greater",
		"",
	)

	ErrImagesUnrecognized = NewBaseError(
		http.StatusBadRequest,
		"IMAGES_UNRECOGNIZED",
		"No image entry is a recognizable encoded image or http(s) URL",
		"",
	)

	ErrStatusInvalid = NewBaseError(
		http.StatusBadRequest,
		"STATUS_INVALID",
		"Listing status is not valid",
		"",
	)

	// Listing lifecycle errors
	ErrListingNotFound = NewBaseError(
		http.StatusNotFound,
		"LISTING_NOT_FOUND",
		"Listing not found",
		"",
	)

	ErrListingAlreadySold = NewBaseError(
		http.StatusConflict,
		"LISTING_ALREADY_SOLD",
		"Listing has already been sold",
		"",
	)

	// User errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// Authentication and authorization errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication is required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have permission to perform this action",
		"",
	)

	// Generic validation error for structural request failures
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)
)

// DatabaseExecuteError represents a document store execution error,
// implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a store-related error
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
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
