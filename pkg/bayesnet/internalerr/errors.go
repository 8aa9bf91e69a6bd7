package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrUnknownVariable   = errors.New("unknown variable")
	ErrUnknownOutcome    = errors.New("unknown outcome")
	ErrMalformedNetwork  = errors.New("malformed network")
	ErrInvalidQuery      = errors.New("invalid query")
	ErrInvalidAlgorithm  = errors.New("invalid algorithm")
	ErrEmptyFactorSet    = errors.New("no factor references the query variable")
	ErrZeroNormalization = errors.New("normalization sum is zero")
	ErrNotFound          = errors.New("not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)
