// Package errors defines the application error taxonomy exposed at the API
// boundary. Degraded inputs (unknown location, missing region) are NOT errors
// and never appear here.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
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

// Predefined error types
var (
	// Favorite-related errors
	ErrSignInRequired = NewBaseError(
		http.StatusUnauthorized,
		"SIGN_IN_REQUIRED",
		"Sign in to save favorites",
		"",
	)

	ErrFavoriteSyncFailed = NewBaseError(
		http.StatusBadGateway,
		"FAVORITE_SYNC_FAILED",
		"Could not update your favorites, please try again",
		"",
	)

	ErrFavoriteNotLoaded = NewBaseError(
		http.StatusServiceUnavailable,
		"FAVORITES_NOT_LOADED",
		"Favorites are still loading",
		"",
	)

	// Feed-related errors
	ErrDealFeedUnavailable = NewBaseError(
		http.StatusBadGateway,
		"DEAL_FEED_UNAVAILABLE",
		"Deals are temporarily unavailable",
		"",
	)

	ErrDealNotFound = NewBaseError(
		http.StatusNotFound,
		"DEAL_NOT_FOUND",
		"Deal not found",
		"",
	)

	// Generic database error
	ErrDatabaseExecute = NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		"Database operation failed",
		"",
	)
)

// NewDatabaseExecuteError wraps a low-level database error with the generic
// database AppError, keeping the cause in the details.
func NewDatabaseExecuteError(err error, message string) error {
	return errors.Wrap(ErrDatabaseExecute.WithDetails(err.Error()), message)
}
