package interview

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrGeneration    = errors.New("question generation failed")
	ErrNotConfigured = errors.New("generation service not configured")
)
