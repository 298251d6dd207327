package task

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NotFound("0b6f9a0e-8f6e-4c55-9d0b-3f1c2a4e5d6f")

	if got, want := err.Error(), "Task with id [0b6f9a0e-8f6e-4c55-9d0b-3f1c2a4e5d6f] not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = false, want true")
	}

	wrapped := fmt.Errorf("get failed: %w", err)
	var nf *NotFoundError
	if !errors.As(wrapped, &nf) {
		t.Fatal("errors.As() did not find NotFoundError in wrapped error")
	}
	if nf.ID != "0b6f9a0e-8f6e-4c55-9d0b-3f1c2a4e5d6f" {
		t.Errorf("ID = %q", nf.ID)
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("NotFoundError must not match ErrInvalidArgument")
	}
}
