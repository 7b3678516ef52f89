package application

import "strings"

// LoginParams carries a credential check request.
type LoginParams struct {
	Email    string
	Password string
}

// RegisterParams carries a self-service registration request.
type RegisterParams struct {
	Email    string
	Password string
	Role     string
}

// CreateUserParams carries an administrative user creation request.
type CreateUserParams struct {
	Email     string
	Password  string
	Role      string
	FirstName *string
	LastName  *string
}

// VenueInput captures caller provided venue fields.
type VenueInput struct {
	Name        string
	Description string
	Address     string
	AdminID     string
}

// VenuePatch updates a subset of venue fields. Nil fields are left
// unchanged; a non-nil empty string clears the value.
type VenuePatch struct {
	Name        *string
	Description *string
	Address     *string
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	VenueID  string
	Name     string
	Capacity int
}

// RoomPatch updates a subset of room fields. Nil fields are left unchanged.
type RoomPatch struct {
	Name     *string
	Capacity *int
}

// MembershipInput captures caller provided membership fields.
type MembershipInput struct {
	VenueID      string
	UserID       string
	Role         string
	InvitationID *string
}

// InvitationInput captures caller provided invitation fields. MaxUses
// defaults to one use when nil.
type InvitationInput struct {
	VenueID          string
	VenueName        string
	CreatedByUserID  string
	InviteeFirstName string
	InviteeLastName  string
	InviteeEmail     string
	InviteeUserID    *string
	ExpiresAt        *string
	MaxUses          *int
}

// InvitationPatch updates a subset of invitation fields. Nil fields are left
// unchanged; a non-nil empty ExpiresAt clears the expiry.
type InvitationPatch struct {
	ExpiresAt *string
	MaxUses   *int
}

// RedeemParams carries an invitation redemption request. UserEmail is
// optional; when present it is matched against the invitee email.
type RedeemParams struct {
	Token     string
	UserID    string
	UserEmail string
}

// RedeemResult reports a successful (possibly idempotent) redemption.
type RedeemResult struct {
	VenueID      string
	InvitationID string
}

// BookingInput captures caller provided booking fields. BookingDate is
// "YYYY-MM-DD"; StartTime and EndTime are comparable "HH:MM" strings.
type BookingInput struct {
	RoomID      string
	UserID      string
	BookingDate string
	StartTime   string
	EndTime     string
}

// NormalizeEmail trims surrounding whitespace and lowercases an email
// address. Exactly one user may exist per normalized email.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
