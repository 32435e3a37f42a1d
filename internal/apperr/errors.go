// Package apperr defines application-level sentinel errors.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
