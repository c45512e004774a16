package domain

import (
	"errors"
	"fmt"

	"github.com/ludo-technologies/prexpr/internal/expr"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeFileNotFound        = "FILE_NOT_FOUND"
	ErrCodeMalformedExpression = "MALFORMED_EXPRESSION"
	ErrCodeInvalidExpression   = "INVALID_EXPRESSION"
	ErrCodeInvalidSubstitution = "INVALID_SUBSTITUTION"
	ErrCodeUnboundVariable     = "UNBOUND_VARIABLE"
	ErrCodeProcessingError     = "PROCESSING_ERROR"
	ErrCodeConfigError         = "CONFIG_ERROR"
	ErrCodeOutputError         = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat   = "UNSUPPORTED_FORMAT"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewProcessingError creates an error for a failed processing run
func NewProcessingError(message string, cause error) error {
	return NewDomainError(ErrCodeProcessingError, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// ExpressionErrorCode maps an error from the expression core to its code.
// Errors that did not originate there map to PROCESSING_ERROR.
func ExpressionErrorCode(err error) string {
	switch {
	case errors.Is(err, expr.ErrMalformedExpression):
		return ErrCodeMalformedExpression
	case errors.Is(err, expr.ErrInvalidExpression):
		return ErrCodeInvalidExpression
	case errors.Is(err, expr.ErrInvalidSubstitution):
		return ErrCodeInvalidSubstitution
	case errors.Is(err, expr.ErrUnboundVariable):
		return ErrCodeUnboundVariable
	case errors.Is(err, expr.ErrInvalidArgument):
		return ErrCodeInvalidInput
	default:
		return ErrCodeProcessingError
	}
}

// FromExpressionError wraps an error from the expression core in a DomainError
func FromExpressionError(source string, err error) error {
	if err == nil {
		return nil
	}
	var de DomainError
	if errors.As(err, &de) {
		return err
	}
	return NewDomainError(ExpressionErrorCode(err), fmt.Sprintf("expression %q", source), err)
}
