package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrNotAMember is returned when a user attempts a booking action in a
	// venue they hold no membership in.
	ErrNotAMember = errors.New("application: not a member of this venue")
	// ErrAlreadyExists is returned when a uniqueness rule is violated, such
	// as registering a second account under an existing email.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrInvalidCredentials is returned when a login attempt fails.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrSlotConflict is returned when a requested booking window overlaps
	// an existing active booking for the same room and date.
	ErrSlotConflict = errors.New("application: booking slot conflict")
	// ErrInvitationInvalid is returned when an invitation is revoked,
	// expired, or has exhausted its use limit.
	ErrInvitationInvalid = errors.New("application: invitation invalid")
	// ErrWrongRecipient is returned when an invitation targets a different
	// user or email than the redeemer.
	ErrWrongRecipient = errors.New("application: invitation targets another recipient")
	// ErrInvitationAlreadyUsed is returned when a different user attempts to
	// redeem an invitation that is already connected.
	ErrInvitationAlreadyUsed = errors.New("application: invitation already used")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
