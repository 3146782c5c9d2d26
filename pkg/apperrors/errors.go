package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType classifies application errors for HTTP status mapping
type ErrorType string

const (
	// ErrorTypeValidation indicates missing or malformed input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound indicates a referenced entity is absent
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeUnauthorized indicates a missing or invalid credential
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// ErrorTypeForbidden indicates the caller may not act on the resource
	ErrorTypeForbidden ErrorType = "FORBIDDEN"

	// ErrorTypeConflict indicates a uniqueness or state violation
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeInternal indicates an unexpected backing-store failure
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// Machine-readable error codes surfaced in the "error" response field
const (
	CodeDuplicateIdentity  = "duplicate_identity"
	CodeAdminExists        = "admin_exists"
	CodeRoleMismatch       = "role_mismatch"
	CodePendingApproval    = "pending_approval"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUserNotFound       = "user_not_found"
	CodePackageNotFound    = "package_not_found"
	CodeBookingNotFound    = "booking_not_found"
	CodeIllegalTransition  = "illegal_transition"
	CodeGuideMismatch      = "guide_mismatch"
	CodeFeedbackNotFound   = "feedback_not_found"
)

// AppError is the typed error carried across service boundaries
type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the wrapped cause
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: "validation_error", Message: message}
}

// NewNotFoundError creates a new not found error with a machine code
func NewNotFoundError(code, message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Code: code, Message: message}
}

// NewUnauthorizedError creates a new unauthorized error with a machine code
func NewUnauthorizedError(code, message string) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Code: code, Message: message}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	return &AppError{Type: ErrorTypeForbidden, Code: "forbidden", Message: message}
}

// NewConflictError creates a new conflict error with a machine code
func NewConflictError(code, message string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Code: code, Message: message}
}

// NewInternalError creates a new internal error wrapping its cause
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Code: "internal_error", Message: message, Err: err}
}

// AsAppError extracts an *AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == t
}
