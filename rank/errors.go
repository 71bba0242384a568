package rank

import "errors"

var (
	// ErrEmptyWeights indicates a weight configuration with no methods.
	ErrEmptyWeights = errors.New("weight configuration is empty")

	// ErrInvalidWeights indicates a weight configuration whose values are
	// negative, NaN, or sum to zero.
	ErrInvalidWeights = errors.New("invalid weight configuration")

	// ErrUnknownCategory indicates a listing category with no weight preset.
	ErrUnknownCategory = errors.New("unknown listing category")
)
