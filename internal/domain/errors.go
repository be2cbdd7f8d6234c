package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrUnknownIndexType signals that no schema is registered for an index type.
	ErrUnknownIndexType = errors.New("unknown index type")
	// ErrInvalidFormat signals a value that does not match its expected format.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidRequest signals malformed caller input.
	ErrInvalidRequest = errors.New("invalid request")
)

// ConfigurationError reports a caller-side configuration problem,
// such as asking for fields of an index type that has no schema.
type ConfigurationError struct {
	IndexType string
	Err       error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %q", e.Err.Error(), e.IndexType)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NewUnknownIndexType creates a ConfigurationError for an unregistered index type.
func NewUnknownIndexType(indexType string) error {
	return &ConfigurationError{IndexType: indexType, Err: ErrUnknownIndexType}
}

// InvalidFormatError wraps ErrInvalidFormat with the offending value.
type InvalidFormatError struct {
	Value    string
	Expected string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s: %q, must be in format %s", ErrInvalidFormat.Error(), e.Value, e.Expected)
}

func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// NewInvalidFormat creates an InvalidFormatError.
func NewInvalidFormat(value, expected string) error {
	return &InvalidFormatError{Value: value, Expected: expected}
}
