package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/venue-booking/internal/application"
	"github.com/example/venue-booking/internal/persistence"
)

// MembershipService is the membership surface the handler consumes.
type MembershipService interface {
	CreateMembership(ctx context.Context, input application.MembershipInput) (persistence.Membership, error)
	ListMemberships(ctx context.Context, filter persistence.MembershipFilter) ([]persistence.Membership, error)
}

// MembershipHandler serves the membership endpoints.
type MembershipHandler struct {
	service   MembershipService
	responder responder
}

// NewMembershipHandler creates a MembershipHandler.
func NewMembershipHandler(service MembershipService, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{service: service, responder: newResponder(logger)}
}

type createMembershipRequest struct {
	VenueID string `json:"venueId"`
	UserID  string `json:"userId"`
	Role    string `json:"role"`
}

// Create handles POST /api/memberships. Joining twice returns the existing
// membership with 200 rather than an error.
func (h *MembershipHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createMembershipRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	membership, err := h.service.CreateMembership(ctx, application.MembershipInput{
		VenueID: req.VenueID,
		UserID:  req.UserID,
		Role:    req.Role,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, toMembershipResponse(membership))
}

// List handles GET /api/memberships with optional userId and venueId
// filters.
func (h *MembershipHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := persistence.MembershipFilter{
		UserID:  r.URL.Query().Get("userId"),
		VenueID: r.URL.Query().Get("venueId"),
	}

	memberships, err := h.service.ListMemberships(ctx, filter)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	responses := make([]membershipResponse, 0, len(memberships))
	for _, membership := range memberships {
		responses = append(responses, toMembershipResponse(membership))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, responses)
}
