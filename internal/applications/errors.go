package applications

import "errors"

var (
	ErrNotFound      = errors.New("application not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("status must be one of applied, in-progress, rejected, offered")
)
