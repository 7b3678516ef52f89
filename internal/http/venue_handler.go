package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/venue-booking/internal/application"
	"github.com/example/venue-booking/internal/persistence"
)

// VenueService is the venue management surface the handler consumes.
type VenueService interface {
	CreateVenue(ctx context.Context, input application.VenueInput) (persistence.Venue, error)
	UpdateVenue(ctx context.Context, venueID string, patch application.VenuePatch) (persistence.Venue, error)
	GetVenue(ctx context.Context, venueID string) (persistence.Venue, error)
	ListVenues(ctx context.Context, filter persistence.VenueFilter) ([]persistence.Venue, error)
}

// VenueHandler serves the venue endpoints.
type VenueHandler struct {
	service   VenueService
	responder responder
}

// NewVenueHandler creates a VenueHandler.
func NewVenueHandler(service VenueService, logger *slog.Logger) *VenueHandler {
	return &VenueHandler{service: service, responder: newResponder(logger)}
}

type createVenueRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	AdminID     string `json:"adminId"`
}

type patchVenueRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
}

// Create handles POST /api/venues.
func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createVenueRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	venue, err := h.service.CreateVenue(ctx, application.VenueInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		AdminID:     req.AdminID,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, toVenueResponse(venue))
}

// Update handles PATCH /api/venues/{venueID}.
func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	venueID := chi.URLParam(r, "venueID")

	var req patchVenueRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	venue, err := h.service.UpdateVenue(ctx, venueID, application.VenuePatch{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toVenueResponse(venue))
}

// Get handles GET /api/venues/{venueID}.
func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	venue, err := h.service.GetVenue(ctx, chi.URLParam(r, "venueID"))
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toVenueResponse(venue))
}

// List handles GET /api/venues with optional adminId and userId filters.
func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := persistence.VenueFilter{
		AdminID:      r.URL.Query().Get("adminId"),
		MemberUserID: r.URL.Query().Get("userId"),
	}

	venues, err := h.service.ListVenues(ctx, filter)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	responses := make([]venueResponse, 0, len(venues))
	for _, venue := range venues {
		responses = append(responses, toVenueResponse(venue))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, responses)
}
