package pdfexport

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrSuperseded   = errors.New("superseded by a newer request")
	ErrRender       = errors.New("pdf render failed")
)
