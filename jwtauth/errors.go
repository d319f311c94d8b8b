package jwtauth

import (
	"errors"
	"fmt"
)

// ErrorCode represents a validation error code
type ErrorCode string

const (
	ErrMalformed                ErrorCode = "MALFORMED"
	ErrInvalidSignature         ErrorCode = "INVALID_SIGNATURE"
	ErrMismatchedHeaders        ErrorCode = "MISMATCHED_HEADERS"
	ErrMalformedAlgorithmHeader ErrorCode = "MALFORMED_ALGORITHM_HEADER"
	ErrClaimsRejected           ErrorCode = "CLAIMS_REJECTED"
	ErrMissingToken             ErrorCode = "MISSING_TOKEN"
	ErrConfigError              ErrorCode = "CONFIG_ERROR"
	ErrUnsupportedAlgorithm     ErrorCode = "UNSUPPORTED_ALGORITHM"
	ErrNoneAlgorithm            ErrorCode = "NONE_ALGORITHM"
)

// ErrNoValue is returned when reading the value of an empty Optional.
var ErrNoValue = errors.New("jwtauth: optional has no value")

// ValidationError represents a JWT validation error with a code and message
type ValidationError struct {
	Code     ErrorCode
	Message  string
	Internal error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *ValidationError) Unwrap() error {
	return e.Internal
}

// NewValidationError creates a new validation error
func NewValidationError(code ErrorCode, message string, internal error) *ValidationError {
	return &ValidationError{
		Code:     code,
		Message:  message,
		Internal: internal,
	}
}

// getErrorCode extracts the error code from a validation error
func getErrorCode(err error) string {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return string(valErr.Code)
	}
	return "UNKNOWN"
}
