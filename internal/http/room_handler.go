package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/venue-booking/internal/application"
	"github.com/example/venue-booking/internal/persistence"
)

// RoomService is the room management surface the handler consumes.
type RoomService interface {
	CreateRoom(ctx context.Context, input application.RoomInput) (persistence.Room, error)
	UpdateRoom(ctx context.Context, roomID string, patch application.RoomPatch) (persistence.Room, error)
	DeleteRoom(ctx context.Context, roomID string) error
	ListRooms(ctx context.Context, filter persistence.RoomFilter) ([]persistence.Room, error)
}

// AvailabilityService reports the active slots for a room on a date.
type AvailabilityService interface {
	Availability(ctx context.Context, roomID, bookingDate string) (application.RoomAvailability, error)
}

// RoomHandler serves the room endpoints.
type RoomHandler struct {
	service      RoomService
	availability AvailabilityService
	responder    responder
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(service RoomService, availability AvailabilityService, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{service: service, availability: availability, responder: newResponder(logger)}
}

type createRoomRequest struct {
	VenueID  string `json:"venueId"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type patchRoomRequest struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
}

type slotResponse struct {
	BookingID string `json:"bookingId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type availabilityResponse struct {
	RoomID      string         `json:"roomId"`
	BookingDate string         `json:"bookingDate"`
	Slots       []slotResponse `json:"slots"`
}

// Create handles POST /api/rooms.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRoomRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	room, err := h.service.CreateRoom(ctx, application.RoomInput{
		VenueID:  req.VenueID,
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, toRoomResponse(room))
}

// Update handles PATCH /api/rooms/{roomID}.
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roomID := chi.URLParam(r, "roomID")

	var req patchRoomRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoom(ctx, roomID, application.RoomPatch{
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toRoomResponse(room))
}

// Delete handles DELETE /api/rooms/{roomID}. Bookings for the room are
// removed with it.
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.service.DeleteRoom(ctx, chi.URLParam(r, "roomID")); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

// List handles GET /api/rooms with optional venueId or comma-separated
// venueIds filters.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filter persistence.RoomFilter
	if venueID := r.URL.Query().Get("venueId"); venueID != "" {
		filter.VenueIDs = append(filter.VenueIDs, venueID)
	}
	if venueIDs := r.URL.Query().Get("venueIds"); venueIDs != "" {
		for _, id := range strings.Split(venueIDs, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.VenueIDs = append(filter.VenueIDs, id)
			}
		}
	}

	rooms, err := h.service.ListRooms(ctx, filter)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	responses := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, toRoomResponse(room))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, responses)
}

// Availability handles GET /api/rooms/{roomID}/availability?date=.
func (h *RoomHandler) Availability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date := r.URL.Query().Get("date")
	if date == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, codeBadRequest, "date query parameter is required")
		return
	}

	avail, err := h.availability.Availability(ctx, chi.URLParam(r, "roomID"), date)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	slots := make([]slotResponse, 0, len(avail.Slots))
	for _, slot := range avail.Slots {
		slots = append(slots, slotResponse{
			BookingID: slot.BookingID,
			StartTime: slot.Start,
			EndTime:   slot.End,
		})
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, availabilityResponse{
		RoomID:      avail.RoomID,
		BookingDate: avail.BookingDate,
		Slots:       slots,
	})
}
