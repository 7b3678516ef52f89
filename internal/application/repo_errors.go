package application

import (
	"errors"

	"github.com/example/venue-booking/internal/persistence"
)

// Booking lifecycle states.
const (
	BookingStatusActive    = "active"
	BookingStatusCancelled = "cancelled"
)

// DefaultMemberRole is assigned when a membership is created without an
// explicit role.
const DefaultMemberRole = "member"

// mapRepoError translates persistence sentinels into the application error
// taxonomy. Unrecognized errors pass through untouched.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, persistence.ErrConflict):
		return ErrSlotConflict
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		vErr := &ValidationError{}
		vErr.add("reference", "related record does not exist")
		return vErr
	case errors.Is(err, persistence.ErrConstraintViolation):
		vErr := &ValidationError{}
		vErr.add("input", "value violates a storage constraint")
		return vErr
	}
	return err
}
