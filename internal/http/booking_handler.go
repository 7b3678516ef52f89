package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/venue-booking/internal/application"
	"github.com/example/venue-booking/internal/metrics"
	"github.com/example/venue-booking/internal/persistence"
)

// BookingService is the reservation surface the handler consumes.
type BookingService interface {
	CreateBooking(ctx context.Context, input application.BookingInput) (persistence.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (persistence.Booking, error)
	ListBookings(ctx context.Context, filter persistence.BookingFilter) ([]persistence.Booking, error)
}

// BookingHandler serves the booking endpoints.
type BookingHandler struct {
	service   BookingService
	recorder  metrics.Recorder
	responder responder
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(service BookingService, recorder metrics.Recorder, logger *slog.Logger) *BookingHandler {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &BookingHandler{service: service, recorder: recorder, responder: newResponder(logger)}
}

type createBookingRequest struct {
	RoomID      string `json:"roomId"`
	UserID      string `json:"userId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createBookingRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(ctx, application.BookingInput{
		RoomID:      req.RoomID,
		UserID:      req.UserID,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		if errors.Is(err, application.ErrSlotConflict) {
			h.recorder.RecordSlotConflict()
		}
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.recorder.RecordBookingCreated()
	h.responder.writeJSON(ctx, w, http.StatusCreated, toBookingResponse(booking))
}

// Cancel handles POST /api/bookings/{bookingID}/cancel.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	booking, err := h.service.CancelBooking(ctx, chi.URLParam(r, "bookingID"))
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toBookingResponse(booking))
}

// List handles GET /api/bookings with optional userId, roomId, and venueId
// filters.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := persistence.BookingFilter{
		UserID:  r.URL.Query().Get("userId"),
		RoomID:  r.URL.Query().Get("roomId"),
		VenueID: r.URL.Query().Get("venueId"),
	}

	bookings, err := h.service.ListBookings(ctx, filter)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	responses := make([]bookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		responses = append(responses, toBookingResponse(booking))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, responses)
}
