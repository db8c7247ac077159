package resumes

import "errors"

var (
	// ErrInvalidInput indicates missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGeneration indicates the generation service failed or returned an unusable shape.
	ErrGeneration = errors.New("generation failed")

	// ErrNotConfigured indicates the generation service has no API key.
	ErrNotConfigured = errors.New("generation service not configured")

	// ErrUnsupportedFile indicates an upload type text cannot be extracted from.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrNoText indicates an upload that yielded no readable text.
	ErrNoText = errors.New("no text extracted")

	errStoreNotConfigured = errors.New("object storage not configured")
)
