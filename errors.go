package searchscope

import "github.com/kailas-cloud/searchscope/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrUnknownIndexType = domain.ErrUnknownIndexType
	ErrInvalidFormat    = domain.ErrInvalidFormat
	ErrInvalidRequest   = domain.ErrInvalidRequest
)

// ConfigurationError is returned for an index type without a mapping.
type ConfigurationError = domain.ConfigurationError

// InvalidFormatError is returned for a malformed date.
type InvalidFormatError = domain.InvalidFormatError
