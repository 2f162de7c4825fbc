package users

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for user operations
const (
	ErrorTypeNotFound         = "not_found"
	ErrorTypeInvalidID        = "invalid_id"
	ErrorTypeValidationFailed = "validation_failed"
	ErrorTypeDuplicateEmail   = "duplicate_email"
	ErrorTypeStoreUnavailable = "store_unavailable"
)

// UserError represents errors related to user operations
type UserError struct {
	Type    string
	UserID  string
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("user error [%s]: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("user error [%s]: %s", e.Type, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// FieldError names a single violated validation rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewUserNotFoundError creates an error for when a user is not found
func NewUserNotFoundError(userID string) *UserError {
	return &UserError{
		Type:    ErrorTypeNotFound,
		UserID:  userID,
		Message: "User not found",
	}
}

// NewInvalidUserIDError creates an error for a malformed user identifier
func NewInvalidUserIDError(userID string) *UserError {
	return &UserError{
		Type:    ErrorTypeInvalidID,
		UserID:  userID,
		Message: "Invalid user ID",
	}
}

// NewValidationFailedError creates an error carrying the violated field rules
func NewValidationFailedError(fields []FieldError) *UserError {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.Message
	}
	return &UserError{
		Type:    ErrorTypeValidationFailed,
		Message: strings.Join(messages, ", "),
		Fields:  fields,
	}
}

// NewDuplicateEmailError creates an error for an email uniqueness violation
func NewDuplicateEmailError(email string) *UserError {
	return &UserError{
		Type:    ErrorTypeDuplicateEmail,
		Message: "User with this email already exists",
	}
}

// NewStoreUnavailableError creates an error for storage connectivity failures
func NewStoreUnavailableError(cause error) *UserError {
	return &UserError{
		Type:    ErrorTypeStoreUnavailable,
		Message: "Storage is unavailable",
		Cause:   cause,
	}
}

// ErrorType extracts the user error type, or "" when err is not a UserError
func ErrorType(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Type
	}
	return ""
}
