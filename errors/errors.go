package errors

import (
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code" yaml:"code"`
	// Message is a human-readable error message.
	Message string `json:"message" yaml:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-" yaml:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Common Error Constructors ---

// Overflow creates a new AppError for an arithmetic overflow. at is the
// element that could not be combined, partial the accumulator before it.
func Overflow(operation string, at, partial any, index int) *AppError {
	return &AppError{
		Code:    ErrCodeArithmeticOverflow,
		Message: fmt.Sprintf("%s overflowed at element %v (index %d)", operation, at, index),
		Details: map[string]any{
			"operation": operation,
			"at":        at,
			"partial":   partial,
			"index":     index,
		},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// UnsupportedType creates a new AppError for an unknown numeric type name.
func UnsupportedType(name string, supported []string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedType,
		Message: fmt.Sprintf("Unsupported numeric type %q", name),
		Details: map[string]any{"type": name, "supported": supported},
	}
}

// ContextReused creates a new AppError for a reduction context that cannot
// start another run.
func ContextReused(id string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeContextReused,
		Message: fmt.Sprintf("Reduction context %s cannot be reused: %s", id, reason),
		Details: map[string]any{"run_id": id},
	}
}

// SourceFailed creates a new AppError for a failing element sequence.
func SourceFailed(operation string, index int, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeSourceFailed,
		Message: fmt.Sprintf("%s: element source failed at index %d", operation, index),
		Details: map[string]any{"operation": operation, "index": index},
		Cause:   cause,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}
