package responses

import (
	"errors"
	"fmt"
)

var (
	// ErrCodeAlreadyExists matches any *CodeAlreadyExistsError via errors.Is.
	ErrCodeAlreadyExists = errors.New("response code already exists")

	// ErrCodeNotFound matches any *CodeNotFoundError via errors.Is.
	ErrCodeNotFound = errors.New("response code not found")

	// ErrInvalidDescriptor is returned by Register for empty keys, an empty
	// default message or a status outside the HTTP range.
	ErrInvalidDescriptor = errors.New("invalid response descriptor")
)

// CodeAlreadyExistsError reports a Register call on an occupied pair.
// The registry is left unchanged.
type CodeAlreadyExistsError struct {
	Category string
	Code     string
}

func (e *CodeAlreadyExistsError) Error() string {
	return fmt.Sprintf("response code %q already exists in category %q", e.Code, e.Category)
}

// Is lets errors.Is(err, ErrCodeAlreadyExists) match.
func (e *CodeAlreadyExistsError) Is(target error) bool { return target == ErrCodeAlreadyExists }

// CodeNotFoundError reports a missing category, or a missing code within an
// existing category.
type CodeNotFoundError struct {
	Category string
	Code     string
}

func (e *CodeNotFoundError) Error() string {
	return fmt.Sprintf("response code %q not found in category %q", e.Code, e.Category)
}

// Is lets errors.Is(err, ErrCodeNotFound) match.
func (e *CodeNotFoundError) Is(target error) bool { return target == ErrCodeNotFound }
