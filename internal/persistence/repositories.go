package persistence

import "context"

// UserRepository exposes storage operations for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// VenueFilter narrows venue listings.
type VenueFilter struct {
	AdminID string
	// MemberUserID restricts results to venues the user holds a membership
	// in, joined through the memberships collection.
	MemberUserID string
}

// VenueRepository exposes storage operations for venues.
type VenueRepository interface {
	CreateVenue(ctx context.Context, venue Venue) error
	GetVenue(ctx context.Context, id string) (Venue, error)
	UpdateVenue(ctx context.Context, venue Venue) error
	ListVenues(ctx context.Context, filter VenueFilter) ([]Venue, error)
}

// RoomFilter narrows room listings.
type RoomFilter struct {
	VenueIDs []string
}

// RoomRepository exposes storage operations for rooms. DeleteRoom removes
// the room and every booking referencing it in one transaction.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	UpdateRoom(ctx context.Context, room Room) error
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context, filter RoomFilter) ([]Room, error)
}

// MembershipFilter narrows membership listings.
type MembershipFilter struct {
	UserID  string
	VenueID string
}

// MembershipRepository exposes storage operations for memberships.
type MembershipRepository interface {
	CreateMembership(ctx context.Context, membership Membership) error
	// FindMembership returns the membership for the (venue, user) pair or
	// ErrNotFound.
	FindMembership(ctx context.Context, venueID, userID string) (Membership, error)
	ListMemberships(ctx context.Context, filter MembershipFilter) ([]Membership, error)
}

// InvitationRepository exposes storage operations for invitations.
type InvitationRepository interface {
	CreateInvitation(ctx context.Context, invitation Invitation) error
	GetInvitation(ctx context.Context, id string) (Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (Invitation, error)
	UpdateInvitation(ctx context.Context, invitation Invitation) error
	ListInvitations(ctx context.Context, venueID string) ([]Invitation, error)
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	UserID string
	RoomID string
	// VenueID restricts results to bookings whose room belongs to the venue.
	VenueID string
}

// BookingRepository exposes storage operations for bookings.
type BookingRepository interface {
	// CreateBooking inserts the booking, re-checking inside its write
	// transaction that no active booking for the same room and date overlaps
	// the half-open [StartTime, EndTime) window. Returns ErrConflict when a
	// racing writer got there first.
	CreateBooking(ctx context.Context, booking Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	UpdateBooking(ctx context.Context, booking Booking) error
	ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error)
	// ListActiveBookings returns active bookings for the room on the given
	// date, ordered by start time.
	ListActiveBookings(ctx context.Context, roomID, bookingDate string) ([]Booking, error)
}
