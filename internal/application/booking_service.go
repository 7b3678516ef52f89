package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/venue-booking/internal/booking"
	"github.com/example/venue-booking/internal/persistence"
)

// BookingService handles slot reservations. A booking is accepted only when
// the caller is a member of the room's venue and the requested slot does not
// overlap an active booking for the same room and date. Cancelled bookings
// free their slot immediately.
type BookingService struct {
	bookings    BookingStore
	rooms       RoomStore
	memberships MembershipStore
	newID       func(prefix string) string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBookingService wires dependencies for booking operations.
func NewBookingService(bookings BookingStore, rooms RoomStore, memberships MembershipStore, newID func(prefix string) string, now func() time.Time, logger *slog.Logger) *BookingService {
	if newID == nil {
		newID = func(string) string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		bookings:    bookings,
		rooms:       rooms,
		memberships: memberships,
		newID:       newID,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// CreateBooking reserves a half-open [startTime, endTime) slot. The checks
// run in a fixed order: room lookup, membership gate, interval validity,
// date validity, then the overlap scan. The storage layer repeats the
// overlap check inside its write transaction, so two racing requests for
// the same slot cannot both commit.
func (s *BookingService) CreateBooking(ctx context.Context, input BookingInput) (bkg persistence.Booking, err error) {
	if s == nil || s.bookings == nil {
		return persistence.Booking{}, fmt.Errorf("booking service not configured")
	}

	logger := s.loggerWith(ctx, "CreateBooking", "room_id", input.RoomID, "user_id", input.UserID, "booking_date", input.BookingDate)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "booking creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", bkg.ID).InfoContext(ctx, "booking created")
	}()

	room, roomErr := s.rooms.GetRoom(ctx, input.RoomID)
	if roomErr != nil {
		return persistence.Booking{}, mapRepoError(roomErr)
	}

	if _, memberErr := s.memberships.FindMembership(ctx, room.VenueID, input.UserID); memberErr != nil {
		if errors.Is(memberErr, persistence.ErrNotFound) {
			return persistence.Booking{}, ErrNotAMember
		}
		return persistence.Booking{}, memberErr
	}

	if !booking.ValidInterval(input.StartTime, input.EndTime) {
		vErr := &ValidationError{}
		vErr.add("startTime", "start time must be before end time")
		return persistence.Booking{}, vErr
	}

	date, parseErr := booking.ParseDate(input.BookingDate)
	if parseErr != nil {
		vErr := &ValidationError{}
		vErr.add("bookingDate", "booking date must be YYYY-MM-DD")
		return persistence.Booking{}, vErr
	}
	if booking.IsPastDate(date, s.now()) {
		vErr := &ValidationError{}
		vErr.add("bookingDate", "booking date must not be in the past")
		return persistence.Booking{}, vErr
	}

	active, listErr := s.bookings.ListActiveBookings(ctx, input.RoomID, input.BookingDate)
	if listErr != nil {
		return persistence.Booking{}, mapRepoError(listErr)
	}
	slots := make([]booking.Slot, 0, len(active))
	for _, b := range active {
		slots = append(slots, booking.Slot{BookingID: b.ID, Start: b.StartTime, End: b.EndTime})
	}
	if _, clash := booking.FindConflict(slots, input.StartTime, input.EndTime); clash {
		return persistence.Booking{}, ErrSlotConflict
	}

	bkg = persistence.Booking{
		ID:          s.newID("booking"),
		RoomID:      input.RoomID,
		UserID:      input.UserID,
		BookingDate: input.BookingDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Status:      BookingStatusActive,
		CreatedAt:   s.now(),
	}

	if createErr := s.bookings.CreateBooking(ctx, bkg); createErr != nil {
		return persistence.Booking{}, mapRepoError(createErr)
	}

	return bkg, nil
}

// CancelBooking marks a booking cancelled. Cancelling an already cancelled
// booking is a no-op success.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (bkg persistence.Booking, err error) {
	if s == nil || s.bookings == nil {
		return persistence.Booking{}, fmt.Errorf("booking service not configured")
	}

	logger := s.loggerWith(ctx, "CancelBooking", "booking_id", bookingID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "booking cancel failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "booking cancelled")
	}()

	existing, getErr := s.bookings.GetBooking(ctx, bookingID)
	if getErr != nil {
		return persistence.Booking{}, mapRepoError(getErr)
	}

	if existing.Status != BookingStatusCancelled {
		existing.Status = BookingStatusCancelled
		if updateErr := s.bookings.UpdateBooking(ctx, existing); updateErr != nil {
			return persistence.Booking{}, mapRepoError(updateErr)
		}
	}

	return existing, nil
}

// GetBooking returns a booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (persistence.Booking, error) {
	if s == nil || s.bookings == nil {
		return persistence.Booking{}, fmt.Errorf("booking service not configured")
	}
	bkg, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return persistence.Booking{}, mapRepoError(err)
	}
	return bkg, nil
}

// ListBookings enumerates bookings, optionally narrowed by user, room, or
// venue.
func (s *BookingService) ListBookings(ctx context.Context, filter persistence.BookingFilter) ([]persistence.Booking, error) {
	if s == nil || s.bookings == nil {
		return nil, fmt.Errorf("booking service not configured")
	}
	bookings, err := s.bookings.ListBookings(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return bookings, nil
}

// RoomAvailability describes the active reservations for one room on one
// date, as consumed by the availability endpoint.
type RoomAvailability struct {
	RoomID      string
	BookingDate string
	Slots       []booking.Slot
}

// Availability reports the active slots for a room on a date, sorted by the
// storage layer in start-time order.
func (s *BookingService) Availability(ctx context.Context, roomID, bookingDate string) (RoomAvailability, error) {
	if s == nil || s.bookings == nil {
		return RoomAvailability{}, fmt.Errorf("booking service not configured")
	}

	if _, parseErr := booking.ParseDate(bookingDate); parseErr != nil {
		vErr := &ValidationError{}
		vErr.add("bookingDate", "booking date must be YYYY-MM-DD")
		return RoomAvailability{}, vErr
	}

	if s.rooms != nil {
		if _, roomErr := s.rooms.GetRoom(ctx, roomID); roomErr != nil {
			return RoomAvailability{}, mapRepoError(roomErr)
		}
	}

	active, err := s.bookings.ListActiveBookings(ctx, roomID, bookingDate)
	if err != nil {
		return RoomAvailability{}, mapRepoError(err)
	}

	slots := make([]booking.Slot, 0, len(active))
	for _, b := range active {
		slots = append(slots, booking.Slot{BookingID: b.ID, Start: b.StartTime, End: b.EndTime})
	}
	return RoomAvailability{RoomID: roomID, BookingDate: bookingDate, Slots: slots}, nil
}
