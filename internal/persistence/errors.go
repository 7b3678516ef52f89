package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a uniqueness constraint is violated,
	// such as a second user with the same normalized email.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConflict is returned when a booking insert loses to an overlapping
	// active booking inside the same write transaction.
	ErrConflict = errors.New("persistence: conflicting booking")
	// ErrConstraintViolation is returned for check-constraint failures such
	// as a non-positive room capacity.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a record references a row that
	// does not exist.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)
