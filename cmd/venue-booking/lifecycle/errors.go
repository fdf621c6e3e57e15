package lifecycle

import (
	"fmt"
	"venue-booking-backend/cmd/venue-booking/repository"

	"github.com/pkg/errors"
)

// Error kinds. Every failure returned by Service for a caller mistake wraps
// exactly one of them; test with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

// Error carries a human readable message for one of the error kinds.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func validationf(format string, args ...any) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...any) error {
	return &Error{kind: ErrForbidden, msg: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) error {
	return &Error{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

// lookupErr turns a repository miss into a NotFound error and wraps anything
// else with the operation that failed.
func lookupErr(err error, what, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundf("%s %s not found", what, id)
	}
	return errors.Wrapf(err, "find %s %s", what, id)
}
