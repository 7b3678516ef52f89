package application

import (
	"context"

	"github.com/example/venue-booking/internal/persistence"
)

// The services declare the storage surface they consume. The SQLite store
// satisfies all of these; tests substitute per-service stubs.

// UserStore captures the user persistence operations used by the services.
type UserStore interface {
	CreateUser(ctx context.Context, user persistence.User) error
	GetUser(ctx context.Context, id string) (persistence.User, error)
	GetUserByEmail(ctx context.Context, email string) (persistence.User, error)
	ListUsers(ctx context.Context) ([]persistence.User, error)
}

// VenueStore captures the venue persistence operations used by the services.
type VenueStore interface {
	CreateVenue(ctx context.Context, venue persistence.Venue) error
	GetVenue(ctx context.Context, id string) (persistence.Venue, error)
	UpdateVenue(ctx context.Context, venue persistence.Venue) error
	ListVenues(ctx context.Context, filter persistence.VenueFilter) ([]persistence.Venue, error)
}

// RoomStore captures the room persistence operations used by the services.
type RoomStore interface {
	CreateRoom(ctx context.Context, room persistence.Room) error
	GetRoom(ctx context.Context, id string) (persistence.Room, error)
	UpdateRoom(ctx context.Context, room persistence.Room) error
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context, filter persistence.RoomFilter) ([]persistence.Room, error)
}

// MembershipStore captures the membership persistence operations used by the
// services.
type MembershipStore interface {
	CreateMembership(ctx context.Context, membership persistence.Membership) error
	FindMembership(ctx context.Context, venueID, userID string) (persistence.Membership, error)
	ListMemberships(ctx context.Context, filter persistence.MembershipFilter) ([]persistence.Membership, error)
}

// InvitationStore captures the invitation persistence operations used by the
// services.
type InvitationStore interface {
	CreateInvitation(ctx context.Context, invitation persistence.Invitation) error
	GetInvitation(ctx context.Context, id string) (persistence.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (persistence.Invitation, error)
	UpdateInvitation(ctx context.Context, invitation persistence.Invitation) error
	ListInvitations(ctx context.Context, venueID string) ([]persistence.Invitation, error)
}

// BookingStore captures the booking persistence operations used by the
// services.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking persistence.Booking) error
	GetBooking(ctx context.Context, id string) (persistence.Booking, error)
	UpdateBooking(ctx context.Context, booking persistence.Booking) error
	ListBookings(ctx context.Context, filter persistence.BookingFilter) ([]persistence.Booking, error)
	ListActiveBookings(ctx context.Context, roomID, bookingDate string) ([]persistence.Booking, error)
}
