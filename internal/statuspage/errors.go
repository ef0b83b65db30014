package statuspage

import "errors"

var (
	// ErrValidation marks input that fails field validation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a component does not exist.
	ErrNotFound = errors.New("component not found")

	// ErrDuplicateName is returned when a component name is already taken.
	ErrDuplicateName = errors.New("component already exists")
)
