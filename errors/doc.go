// Package errors provides the structured error type shared by stdmath
// packages.
//
// Every error carries a machine-readable ErrorCode, a human-readable
// message, optional details, and an optional cause. Arithmetic overflow is
// not an error inside a reduction; it only becomes an AppError when a caller
// converts a terminal OverflowState with Err.
package errors
