package speech

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotConfigured = errors.New("speech service not configured")
	ErrUpstream      = errors.New("speech service request failed")
)
