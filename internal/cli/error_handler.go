package cli

import (
	"fmt"
	"strings"

	"timetracker/internal/errors"
	"timetracker/internal/validation"
)

// Exit codes returned by the tt binary.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitNotFound     = 3
	ExitInvalidState = 4
	ExitTimeout      = 5
	ExitCanceled     = 130
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes a user-facing message with the failed operation. Storage
// details are hidden behind errors.GetUserMessage.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{
		Operation: operation,
		Message:   eh.message(err),
		Err:       err,
	}
}

func (eh *ErrorHandler) message(err error) string {
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		msgs := make([]string, 0, len(fields))
		for _, fe := range fields {
			msgs = append(msgs, fe.Message)
		}
		return strings.Join(msgs, "; ")
	}
	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// ExitCode maps an error to the process exit status.
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsErrorType(err, errors.ErrorTypeValidation),
		errors.IsErrorType(err, errors.ErrorTypeInvalidArgument),
		errors.IsErrorType(err, errors.ErrorTypeConflict):
		return ExitInvalidInput
	case errors.IsErrorType(err, errors.ErrorTypeNotFound):
		return ExitNotFound
	case errors.IsErrorType(err, errors.ErrorTypeInvalidState):
		return ExitInvalidState
	case errors.IsErrorType(err, errors.ErrorTypeTimeout):
		return ExitTimeout
	case errors.IsErrorType(err, errors.ErrorTypeCanceled):
		return ExitCanceled
	default:
		return ExitFailure
	}
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// CommandError is returned by command handlers. It keeps the original error
// for errors.Is and errors.As.
type CommandError struct {
	Operation string
	Message   string
	Err       error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Operation, e.Message)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
