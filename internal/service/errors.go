package service

import (
	"fmt"

	"github.com/pkg/errors"
)

// Domain error kinds. Handlers map these onto HTTP statuses; everything
// else coming out of the service is treated as an internal error.
var (
	// ErrNotFound means the event, agenda or item does not exist (or the
	// item does not belong to the named agenda).
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the requester is authenticated but is not the
	// owner of the event the operation targets.
	ErrForbidden = errors.New("requester does not own the event")

	// ErrAlreadyExists means a uniqueness rule was violated: the event
	// already has an agenda, or a user with the email already exists.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrReorderConflict means a reorder request referenced an item that
	// does not belong to the target agenda. Nothing was mutated.
	ErrReorderConflict = errors.New("reorder references items outside the agenda")
)

// ValidationError reports a malformed field in a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a field validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
