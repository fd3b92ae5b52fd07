package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every field-constraint failure.
// Callers match it with errors.Is to map any of the specific errors below
// to a single "bad request" outcome.
var ErrValidation = errors.New("validation failed")

var (
	// ErrInvalidTitle is returned when a title is empty or longer than MaxTitleLength.
	ErrInvalidTitle = fmt.Errorf("%w: invalid title", ErrValidation)

	// ErrDescriptionTooLong is returned when a description exceeds MaxDescriptionLength.
	ErrDescriptionTooLong = fmt.Errorf("%w: description too long", ErrValidation)

	// ErrInvalidCategory is returned when a category cannot be stored.
	ErrInvalidCategory = fmt.Errorf("%w: invalid category", ErrValidation)

	// ErrEmptyOwner is returned when a task is built without an owner identity.
	ErrEmptyOwner = fmt.Errorf("%w: owner identity cannot be empty", ErrValidation)

	// ErrEmailRequired is returned when a user is registered without an email.
	ErrEmailRequired = fmt.Errorf("%w: email is required", ErrValidation)

	// ErrInvalidEmail is returned when an email contains characters that
	// cannot be stored.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email", ErrValidation)
)
