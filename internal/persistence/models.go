package persistence

import "time"

// User is an account that can own venues or hold memberships. The password
// is stored and compared as-is.
type User struct {
	ID        string
	Email     string
	Password  string
	Role      string
	FirstName *string
	LastName  *string
	CreatedAt time.Time
}

// Venue is a bookable location owned by an administrator account.
type Venue struct {
	ID          string
	Name        string
	Description string
	Address     string
	AdminID     string
	CreatedAt   time.Time
}

// Room belongs to exactly one venue. Deleting a room removes every booking
// that references it.
type Room struct {
	ID        string
	VenueID   string
	Name      string
	Capacity  int
	CreatedAt time.Time
}

// Membership grants a user access to act within a venue. At most one exists
// per (VenueID, UserID) pair.
type Membership struct {
	ID           string
	VenueID      string
	UserID       string
	Role         string
	JoinedAt     time.Time
	InvitationID *string
}

// Invitation carries an unguessable token that, when redeemed, grants a
// membership in its venue. ExpiresAt is kept as the raw RFC 3339 string the
// caller supplied; the validity predicate treats malformed values as expired.
type Invitation struct {
	ID               string
	VenueID          string
	VenueName        string
	Token            string
	CreatedByUserID  string
	InviteeUserID    *string
	InviteeFirstName string
	InviteeLastName  string
	InviteeEmail     string
	CreatedAt        time.Time
	ExpiresAt        *string
	MaxUses          *int
	Uses             int
	Status           string
	RevokedAt        *time.Time
	ConnectedAt      *time.Time
	ConnectedUserID  *string
}

// Booking reserves a room for a half-open [StartTime, EndTime) window on a
// calendar date. Times are "HH:MM" strings whose lexicographic order matches
// their chronological order; BookingDate is "YYYY-MM-DD".
type Booking struct {
	ID          string
	RoomID      string
	UserID      string
	BookingDate string
	StartTime   string
	EndTime     string
	Status      string
	CreatedAt   time.Time
}
