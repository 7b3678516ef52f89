package http

import (
	"time"

	"github.com/example/venue-booking/internal/persistence"
)

// Wire DTOs. The API speaks camelCase JSON; timestamps are RFC3339 strings.

type userResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// toUserResponse strips the password before anything reaches the wire.
func toUserResponse(user persistence.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: formatTime(user.CreatedAt),
	}
}

type venueResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	AdminID     string `json:"adminId"`
	CreatedAt   string `json:"createdAt"`
}

func toVenueResponse(venue persistence.Venue) venueResponse {
	return venueResponse{
		ID:          venue.ID,
		Name:        venue.Name,
		Description: venue.Description,
		Address:     venue.Address,
		AdminID:     venue.AdminID,
		CreatedAt:   formatTime(venue.CreatedAt),
	}
}

type roomResponse struct {
	ID        string `json:"id"`
	VenueID   string `json:"venueId"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	CreatedAt string `json:"createdAt"`
}

func toRoomResponse(room persistence.Room) roomResponse {
	return roomResponse{
		ID:        room.ID,
		VenueID:   room.VenueID,
		Name:      room.Name,
		Capacity:  room.Capacity,
		CreatedAt: formatTime(room.CreatedAt),
	}
}

type membershipResponse struct {
	ID           string  `json:"id"`
	VenueID      string  `json:"venueId"`
	UserID       string  `json:"userId"`
	Role         string  `json:"role"`
	JoinedAt     string  `json:"joinedAt"`
	InvitationID *string `json:"invitationId,omitempty"`
}

func toMembershipResponse(membership persistence.Membership) membershipResponse {
	return membershipResponse{
		ID:           membership.ID,
		VenueID:      membership.VenueID,
		UserID:       membership.UserID,
		Role:         membership.Role,
		JoinedAt:     formatTime(membership.JoinedAt),
		InvitationID: membership.InvitationID,
	}
}

type invitationResponse struct {
	ID               string  `json:"id"`
	VenueID          string  `json:"venueId"`
	VenueName        string  `json:"venueName"`
	Token            string  `json:"token"`
	CreatedByUserID  string  `json:"createdByUserId"`
	InviteeUserID    *string `json:"inviteeUserId,omitempty"`
	InviteeFirstName string  `json:"inviteeFirstName"`
	InviteeLastName  string  `json:"inviteeLastName"`
	InviteeEmail     string  `json:"inviteeEmail"`
	CreatedAt        string  `json:"createdAt"`
	ExpiresAt        *string `json:"expiresAt,omitempty"`
	MaxUses          *int    `json:"maxUses,omitempty"`
	Uses             int     `json:"uses"`
	Status           string  `json:"status"`
	RevokedAt        *string `json:"revokedAt,omitempty"`
	ConnectedAt      *string `json:"connectedAt,omitempty"`
	ConnectedUserID  *string `json:"connectedUserId,omitempty"`
}

func toInvitationResponse(invitation persistence.Invitation) invitationResponse {
	return invitationResponse{
		ID:               invitation.ID,
		VenueID:          invitation.VenueID,
		VenueName:        invitation.VenueName,
		Token:            invitation.Token,
		CreatedByUserID:  invitation.CreatedByUserID,
		InviteeUserID:    invitation.InviteeUserID,
		InviteeFirstName: invitation.InviteeFirstName,
		InviteeLastName:  invitation.InviteeLastName,
		InviteeEmail:     invitation.InviteeEmail,
		CreatedAt:        formatTime(invitation.CreatedAt),
		ExpiresAt:        invitation.ExpiresAt,
		MaxUses:          invitation.MaxUses,
		Uses:             invitation.Uses,
		Status:           invitation.Status,
		RevokedAt:        formatOptionalTime(invitation.RevokedAt),
		ConnectedAt:      formatOptionalTime(invitation.ConnectedAt),
		ConnectedUserID:  invitation.ConnectedUserID,
	}
}

type bookingResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"roomId"`
	UserID      string `json:"userId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

func toBookingResponse(booking persistence.Booking) bookingResponse {
	return bookingResponse{
		ID:          booking.ID,
		RoomID:      booking.RoomID,
		UserID:      booking.UserID,
		BookingDate: booking.BookingDate,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Status:      booking.Status,
		CreatedAt:   formatTime(booking.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
