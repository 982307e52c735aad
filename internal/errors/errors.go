package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Kind classifies an error for callers that need to pick a response
// without inspecting concrete types.
type Kind string

const (
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
	KindUnknown    Kind = "unknown"
)

// ValidationError indicates malformed input to an operation.
// Returned before any state is mutated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// InternalError wraps an unexpected failure (I/O, broken invariant).
// The message includes the cause and is meant for logs, not for untrusted callers.
type InternalError struct {
	Op  string // "create square", "clear squares"
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed", e.Op)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInternal}
	}
	return []error{ErrInternal, e.Err}
}

// Helper constructors for common cases

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func MissingID(resource string) error {
	return &ValidationError{Field: "id", Message: fmt.Sprintf("%s must have a non-empty id", resource)}
}

func NegativeIndex(index int) error {
	return &ValidationError{Field: "index", Message: fmt.Sprintf("must be non-negative, got %d", index)}
}

// Internal wraps err as an InternalError for op.
// Validation errors pass through unchanged so their kind is preserved.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidationError(err) || IsInternal(err) {
		return err
	}
	return &InternalError{Op: op, Err: err}
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInternal checks if an error is an internal error.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

// KindOf reports the kind of err. A nil error has no kind and returns "".
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case IsValidationError(err):
		return KindValidation
	case IsInternal(err):
		return KindInternal
	default:
		return KindUnknown
	}
}
