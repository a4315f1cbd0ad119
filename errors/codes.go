package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Arithmetic errors
const (
	// ErrCodeArithmeticOverflow indicates a result left the representable
	// range of its numeric type.
	ErrCodeArithmeticOverflow ErrorCode = "ARITHMETIC_OVERFLOW"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeUnsupportedType indicates a numeric type name that is not supported.
	ErrCodeUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"
)

// Reduction errors
const (
	// ErrCodeContextReused indicates a reduction context was used twice
	// without a reset, or after an abnormal exit.
	ErrCodeContextReused ErrorCode = "CONTEXT_REUSED"
	// ErrCodeSourceFailed indicates the element sequence feeding a
	// reduction failed.
	ErrCodeSourceFailed ErrorCode = "SOURCE_FAILED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var inputCodes = map[ErrorCode]bool{
	ErrCodeInvalidInput:    true,
	ErrCodeMissingField:    true,
	ErrCodeUnsupportedType: true,
}

// IsInputCode returns true if the code blames the caller's input.
func IsInputCode(code ErrorCode) bool {
	return inputCodes[code]
}
