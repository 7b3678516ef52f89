package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/venue-booking/internal/application"
	"github.com/example/venue-booking/internal/persistence"
)

// AuthService is the authentication surface the handler consumes.
type AuthService interface {
	Login(ctx context.Context, params application.LoginParams) (persistence.User, error)
	Register(ctx context.Context, params application.RegisterParams) (persistence.User, error)
}

// AuthHandler serves the login and registration endpoints.
type AuthHandler struct {
	service   AuthService
	responder responder
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(service AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: service, responder: newResponder(logger)}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type authResponse struct {
	User userResponse `json:"user"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	user, err := h.service.Login(ctx, application.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, authResponse{User: toUserResponse(user)})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	user, err := h.service.Register(ctx, application.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, authResponse{User: toUserResponse(user)})
}
