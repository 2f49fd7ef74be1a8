// Package errors provides custom error types for the tabular consolidation
// system. These errors enable programmatic error checking and better
// diagnostics without coupling callers to error message text.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the consolidation system.
var (
	// ErrInvalidInput indicates that provided input was structurally invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file format the ingester or encoder
	// does not understand.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEnhancementFailed indicates the optional enrichment step failed;
	// callers fall back to the deterministic result.
	ErrEnhancementFailed = errors.New("enhancement failed")

	// ErrAPIKeyRequired indicates that an API key is required but not provided.
	ErrAPIKeyRequired = errors.New("API key required")
)

// ValidationError represents a structural validation failure in engine input.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents a failure to parse an input file into a source table.
type ParseError struct {
	Path    string
	Format  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parsing %s as %s: %s", e.Path, e.Format, e.Message)
	}
	return fmt.Sprintf("parsing %s input: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError.
func NewParseError(path, format, message string, err error) *ParseError {
	return &ParseError{Path: path, Format: format, Message: message, Err: err}
}

// EncodeError represents a failure to serialize a consolidation result.
// Encoders downgrade these to placeholder output; they never crash a caller.
type EncodeError struct {
	Format  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s report: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *EncodeError) Unwrap() error {
	return e.Err
}

// NewEncodeError creates a new EncodeError.
func NewEncodeError(format, message string, err error) *EncodeError {
	return &EncodeError{Format: format, Message: message, Err: err}
}

// EnhanceError represents a soft failure in the optional LLM enrichment
// step. The orchestrator substitutes the deterministic result when it sees
// one of these.
type EnhanceError struct {
	Enhancer string
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *EnhanceError) Error() string {
	return fmt.Sprintf("enhancer %s: %s", e.Enhancer, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *EnhanceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *EnhanceError) Is(target error) bool {
	return target == ErrEnhancementFailed
}

// NewEnhanceError creates a new EnhanceError.
func NewEnhanceError(enhancer, message string, err error) *EnhanceError {
	return &EnhanceError{Enhancer: enhancer, Message: message, Err: err}
}
