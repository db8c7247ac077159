package documents

import "errors"

var (
	// ErrInvalidInput indicates a missing or malformed request parameter.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the object does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrNotConfigured indicates no object store credentials are configured.
	ErrNotConfigured = errors.New("object storage not configured")
)
