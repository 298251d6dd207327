package task

import (
	"errors"
	"fmt"
)

// Sentinel errors for task operations.
var (
	// ErrNotFound is returned when the targeted task does not exist.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidArgument is returned for malformed input, such as a negative page.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError carries the id of the missing task.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task with id [%s] not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound returns a NotFoundError for id.
func NotFound(id string) error {
	return &NotFoundError{ID: id}
}
