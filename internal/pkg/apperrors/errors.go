package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidDate      = errors.New("invalid date format")
	ErrBadRequest       = errors.New("bad request")
)

// Property errors
var (
	ErrPropertyNotFound      = errors.New("property not found")
	ErrPropertyAlreadyExists = errors.New("property with this registration number already exists")
	ErrMeetingNotFound       = errors.New("meeting not found")
)

// Action log errors
var (
	ErrCommentNotFound = errors.New("action comment not found")
)

// Contractor errors
var (
	ErrContractorNotFound = errors.New("contractor not found")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotAManager  = errors.New("user cannot be assigned as a property manager")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a resource-not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
