package jobdesc

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrGeneration    = errors.New("job analysis failed")
	ErrNotConfigured = errors.New("generation service not configured")
)
