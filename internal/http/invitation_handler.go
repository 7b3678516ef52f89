package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/venue-booking/internal/application"
	"github.com/example/venue-booking/internal/metrics"
	"github.com/example/venue-booking/internal/persistence"
)

// InvitationService is the invitation surface the handler consumes.
type InvitationService interface {
	CreateInvitation(ctx context.Context, input application.InvitationInput) (persistence.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (persistence.Invitation, error)
	ListInvitations(ctx context.Context, venueID string) ([]persistence.Invitation, error)
	UpdateInvitation(ctx context.Context, invitationID string, patch application.InvitationPatch) (persistence.Invitation, error)
	RevokeInvitation(ctx context.Context, invitationID string) (persistence.Invitation, error)
	Redeem(ctx context.Context, params application.RedeemParams) (application.RedeemResult, error)
}

// InvitationHandler serves the invitation endpoints.
type InvitationHandler struct {
	service   InvitationService
	recorder  metrics.Recorder
	responder responder
}

// NewInvitationHandler creates an InvitationHandler.
func NewInvitationHandler(service InvitationService, recorder metrics.Recorder, logger *slog.Logger) *InvitationHandler {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &InvitationHandler{service: service, recorder: recorder, responder: newResponder(logger)}
}

type createInvitationRequest struct {
	VenueID          string  `json:"venueId"`
	CreatedByUserID  string  `json:"createdByUserId"`
	InviteeFirstName string  `json:"inviteeFirstName"`
	InviteeLastName  string  `json:"inviteeLastName"`
	InviteeEmail     string  `json:"inviteeEmail"`
	InviteeUserID    *string `json:"inviteeUserId"`
	ExpiresAt        *string `json:"expiresAt"`
	MaxUses          *int    `json:"maxUses"`
}

type patchInvitationRequest struct {
	ExpiresAt *string `json:"expiresAt"`
	MaxUses   *int    `json:"maxUses"`
}

type redeemRequest struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}

type redeemResponse struct {
	Success      bool   `json:"success"`
	VenueID      string `json:"venueId"`
	InvitationID string `json:"invitationId"`
}

// Create handles POST /api/invitations.
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createInvitationRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	invitation, err := h.service.CreateInvitation(ctx, application.InvitationInput{
		VenueID:          req.VenueID,
		CreatedByUserID:  req.CreatedByUserID,
		InviteeFirstName: req.InviteeFirstName,
		InviteeLastName:  req.InviteeLastName,
		InviteeEmail:     req.InviteeEmail,
		InviteeUserID:    req.InviteeUserID,
		ExpiresAt:        req.ExpiresAt,
		MaxUses:          req.MaxUses,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.recorder.RecordInvitationIssued()
	h.responder.writeJSON(ctx, w, http.StatusCreated, toInvitationResponse(invitation))
}

// GetByToken handles GET /api/invitations/by-token/{token}. The endpoint is
// the pre-redemption preview, so the caller needs no account yet.
func (h *InvitationHandler) GetByToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invitation, err := h.service.GetInvitationByToken(ctx, chi.URLParam(r, "token"))
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toInvitationResponse(invitation))
}

// Redeem handles POST /api/invitations/by-token/{token}/redeem.
func (h *InvitationHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req redeemRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}
	if req.UserID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, codeBadRequest, "userId is required")
		return
	}

	result, err := h.service.Redeem(ctx, application.RedeemParams{
		Token:     chi.URLParam(r, "token"),
		UserID:    req.UserID,
		UserEmail: req.UserEmail,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.recorder.RecordInvitationRedeemed()
	h.responder.writeJSON(ctx, w, http.StatusOK, redeemResponse{
		Success:      true,
		VenueID:      result.VenueID,
		InvitationID: result.InvitationID,
	})
}

// Update handles PATCH /api/invitations/{invitationID}.
func (h *InvitationHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req patchInvitationRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	invitation, err := h.service.UpdateInvitation(ctx, chi.URLParam(r, "invitationID"), application.InvitationPatch{
		ExpiresAt: req.ExpiresAt,
		MaxUses:   req.MaxUses,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toInvitationResponse(invitation))
}

// Revoke handles POST /api/invitations/{invitationID}/revoke.
func (h *InvitationHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invitation, err := h.service.RevokeInvitation(ctx, chi.URLParam(r, "invitationID"))
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toInvitationResponse(invitation))
}

// List handles GET /api/invitations?venueId=.
func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	venueID := r.URL.Query().Get("venueId")
	if venueID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, codeBadRequest, "venueId query parameter is required")
		return
	}

	invitations, err := h.service.ListInvitations(ctx, venueID)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	responses := make([]invitationResponse, 0, len(invitations))
	for _, invitation := range invitations {
		responses = append(responses, toInvitationResponse(invitation))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, responses)
}
