// Package services defines the business logic around the response code
// registry. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by callers.
//
// Translation into HTTP responses is performed at the handler layer.
package services

import (
	"errors"

	"github.com/tbourn/go-response-codes/internal/responses"
)

var (
	// ErrInvalidCode is returned when a category or code name is not a valid
	// identifier, or the descriptor fails registry validation.
	ErrInvalidCode = errors.New("invalid response code")

	// ErrInvalidData is returned when the default payload of a code cannot be
	// encoded for persistence.
	ErrInvalidData = errors.New("data is not JSON encodable")

	// ErrCodeExists aliases the registry sentinel so handlers only import
	// this package.
	ErrCodeExists = responses.ErrCodeAlreadyExists

	// ErrCodeNotFound aliases the registry sentinel.
	ErrCodeNotFound = responses.ErrCodeNotFound
)
