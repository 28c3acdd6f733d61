// ABOUTME: Typed outcomes for task operations that fail on user input
// ABOUTME: ValidationError maps to 400 and NotFoundError maps to 404 at the HTTP edge

package tasks

import (
	"errors"
	"fmt"
)

// ValidationError reports a request that is missing required fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a task id that is not in the store.
// ID holds the id exactly as the caller supplied it.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task with ID %s not found", e.ID)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
