// Package errors declares sentinel errors shared by domain and repositories.
//
// Repositories wrap these with details; callers test them with errors.Is.
package errors

import "errors"

var (
	// requested record is not found, or it is out of the owner scope.
	ErrMissing = errors.New("missing")

	// requested record is found more than expected.
	ErrTooMuch = errors.New("too much")

	// the operation collides with the current state of records.
	ErrConflict = errors.New("conflict")

	// given parameter does not satisfy constraints.
	ErrInvalidParam = errors.New("invalid parameter")

	// the actor is not allowed to do the operation.
	ErrForbidden = errors.New("forbidden")

	// purging is allowed only for soft-deleted records.
	ErrNotDeleted = errors.New("record is not deleted yet")

	// quantity expression can not be understood.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// NewInvalidParam returns an error wrapping ErrInvalidParam with a field name and reason.
func NewInvalidParam(field string, reason string) error {
	return &InvalidParam{Field: field, Reason: reason}
}

type InvalidParam struct {
	Field  string
	Reason string
}

func (e *InvalidParam) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *InvalidParam) Unwrap() error {
	return ErrInvalidParam
}
