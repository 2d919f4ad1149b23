package errors

import (
	"context"
	"errors"
	"fmt"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeNoActiveSession  = "NO_ACTIVE_SESSION"
	CodeInvalidState     = "INVALID_STATE"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeInvalidRange     = "INVALID_RANGE"
	CodeConflict         = "CONFLICT"
	CodeDatabase         = "DATABASE_ERROR"
	CodeTimeout          = "TIMEOUT"
	CodeCanceled         = "CANCELED"
)

// ErrNoActiveSession is matched with errors.Is when a stop is requested
// while the user has no open time entry.
var ErrNoActiveSession = &AppError{Type: ErrorTypeInvalidState, Code: CodeNoActiveSession}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    CodeValidationFailed,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    CodeNotFound,
		Context: map[string]any{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewNoActiveSessionError reports a stop request for a user with nothing running.
func NewNoActiveSessionError(userID int64) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: "no active session",
		Code:    CodeNoActiveSession,
		Context: map[string]any{
			"user_id": userID,
		},
	}
}

// NewInvalidStateError creates an error for an operation that is not allowed in the current state.
func NewInvalidStateError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: message,
		Code:    CodeInvalidState,
		Context: make(map[string]any),
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(field string, value any, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidArgument,
		Message: fmt.Sprintf("invalid argument %s: %s", field, reason),
		Code:    CodeInvalidArgument,
		Context: map[string]any{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewInvalidRangeError reports a window whose start is after its end.
func NewInvalidRangeError(from, to any) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidArgument,
		Message: "start of range must not be after its end",
		Code:    CodeInvalidRange,
		Context: map[string]any{
			"from": from,
			"to":   to,
		},
	}
}

// NewConflictError creates an error for a uniqueness violation.
func NewConflictError(resource string, field string, value any) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: fmt.Sprintf("%s with %s %v already exists", resource, field, value),
		Code:    CodeConflict,
		Context: map[string]any{
			"resource": resource,
			"field":    field,
			"value":    value,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    CodeDatabase,
		Cause:   cause,
		Context: map[string]any{
			"operation": operation,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout any) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    CodeTimeout,
		Context: map[string]any{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// NewCanceledError reports an operation abandoned because its context was canceled.
func NewCanceledError(operation string) *AppError {
	return &AppError{
		Type:    ErrorTypeCanceled,
		Message: fmt.Sprintf("operation canceled: %s", operation),
		Code:    CodeCanceled,
		Context: map[string]any{
			"operation": operation,
		},
	}
}

// FromContextError converts a context deadline or cancellation in err's
// chain into a Timeout or Canceled error that keeps err as its cause. It
// returns nil for any other error.
func FromContextError(operation string, err error) *AppError {
	var appErr *AppError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		appErr = NewTimeoutError(operation, nil)
	case errors.Is(err, context.Canceled):
		appErr = NewCanceledError(operation)
	default:
		return nil
	}
	appErr.Cause = err
	return appErr
}

// IsInterrupted reports whether err is a Timeout or Canceled error.
func IsInterrupted(err error) bool {
	return IsErrorType(err, ErrorTypeTimeout) || IsErrorType(err, ErrorTypeCanceled)
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]any),
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err, or anything it wraps, is an AppError of errorType.
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a message safe to show an end user. Internal
// failures are reported opaquely.
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidState,
			ErrorTypeInvalidArgument, ErrorTypeConflict:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		case ErrorTypeCanceled:
			return "The operation was canceled."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is a system failure rather than a caller mistake.
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidState,
			ErrorTypeInvalidArgument, ErrorTypeConflict, ErrorTypeCanceled:
			return false
		default:
			return true
		}
	}
	return true
}
