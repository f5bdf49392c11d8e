// Package errors defines the storefront's application error taxonomy.
package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// AsAppError unwraps err looking for an AppError anywhere in the chain.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
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
	// Identity and authentication
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrRegistrationFailed = NewBaseError(
		http.StatusBadRequest,
		"REGISTRATION_FAILED",
		"Registration failed",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Your session has expired, please sign in again",
		"",
	)

	ErrIdentityMissing = NewBaseError(
		http.StatusBadRequest,
		"IDENTITY_MISSING",
		"No shopper identity could be resolved for this request",
		"",
	)

	// Cart
	ErrCartEmpty = NewBaseError(
		http.StatusConflict,
		"CART_EMPTY",
		"Your cart is empty",
		"",
	)

	ErrCartUnavailable = NewBaseError(
		http.StatusBadGateway,
		"CART_UNAVAILABLE",
		"Could not reach the cart service, please try again",
		"",
	)

	// Checkout
	ErrCheckoutNotStarted = NewBaseError(
		http.StatusConflict,
		"CHECKOUT_NOT_STARTED",
		"No checkout in progress",
		"",
	)

	ErrShippingRequired = NewBaseError(
		http.StatusConflict,
		"SHIPPING_REQUIRED",
		"Complete the shipping step before continuing",
		"",
	)

	ErrPaymentRequired = NewBaseError(
		http.StatusConflict,
		"PAYMENT_REQUIRED",
		"Complete the payment step before continuing",
		"",
	)

	ErrGuestEmailRequired = NewBaseError(
		http.StatusBadRequest,
		"GUEST_EMAIL_REQUIRED",
		"Please provide your email address",
		"",
	)

	ErrAlreadySubmitted = NewBaseError(
		http.StatusConflict,
		"ALREADY_SUBMITTED",
		"This checkout has already been submitted",
		"",
	)

	// Orders
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrOrderSubmitFailed = NewBaseError(
		http.StatusBadGateway,
		"ORDER_SUBMIT_FAILED",
		"Failed to place order, please try again",
		"",
	)

	ErrCancellationReason = NewBaseError(
		http.StatusBadRequest,
		"CANCELLATION_REASON_REQUIRED",
		"Please select a cancellation reason",
		"",
	)

	ErrNoOrderToCancel = NewBaseError(
		http.StatusConflict,
		"NO_ORDER_TO_CANCEL",
		"There is no submitted order to cancel",
		"",
	)

	// Validation
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General
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

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// UpstreamError represents a non-2xx response from one of the external
// storefront services, carrying the server-supplied message when present.
type UpstreamError struct {
	service  string
	httpCode int
	message  string
	details  string
}

// NewUpstreamError creates an error for a failed upstream service call.
// message may be empty, in which case a generic fallback is used.
func NewUpstreamError(service string, httpCode int, message, details string) AppError {
	if message == "" {
		message = "The " + service + " service could not process the request"
	}

	return &UpstreamError{
		service:  service,
		httpCode: httpCode,
		message:  message,
		details:  details,
	}
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return e.service + " service: " + e.message
}

// HTTPCode returns the upstream HTTP status code
func (e *UpstreamError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *UpstreamError) ErrorCode() string {
	return "UPSTREAM_ERROR"
}

// Message returns the user-friendly error message
func (e *UpstreamError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *UpstreamError) Details() string {
	return e.details
}

// Service returns the upstream service name.
func (e *UpstreamError) Service() string {
	return e.service
}

// UnavailableError represents a transport-level failure: no response was
// received from the upstream service (network error, timeout, open breaker).
type UnavailableError struct {
	service string
	err     error
}

// NewUnavailableError creates an error for an unreachable upstream service.
func NewUnavailableError(service string, err error) AppError {
	return &UnavailableError{service: service, err: err}
}

// Error implements the error interface
func (e *UnavailableError) Error() string {
	return errors.Wrap(e.err, e.service+" service unreachable").Error()
}

// HTTPCode returns the HTTP status code
func (e *UnavailableError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *UnavailableError) ErrorCode() string {
	return "SERVICE_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *UnavailableError) Message() string {
	return "We can't reach our services right now, please check your connection and try again"
}

// Details returns detailed error information
func (e *UnavailableError) Details() string {
	return e.err.Error()
}

// Unwrap exposes the transport error for errors.Is checks.
func (e *UnavailableError) Unwrap() error {
	return e.err
}
