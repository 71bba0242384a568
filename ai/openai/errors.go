package openai

import "errors"

var (
	// ErrEmptyResponse indicates the model returned no choices.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrLowConfidence indicates a judgment below the configured confidence floor.
	ErrLowConfidence = errors.New("judgment confidence too low")
)
