package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrValidation marks a missing or malformed required input field.
	ErrValidation = errors.New("validation failed")
	// ErrStore wraps persistence failures that should surface as opaque server errors.
	ErrStore = errors.New("store error")
	// ErrScoring marks a single candidate that could not be scored.
	ErrScoring = errors.New("scoring error")
)

func Validation(field, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, msg)
}

func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// Store annotates err as a store failure for op. A nil err stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

func Is(err, target error) bool { return errors.Is(err, target) }
