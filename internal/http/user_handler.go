package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/venue-booking/internal/application"
	"github.com/example/venue-booking/internal/persistence"
)

// UserService is the account management surface the handler consumes.
type UserService interface {
	CreateUser(ctx context.Context, params application.CreateUserParams) (persistence.User, error)
	GetUserByEmail(ctx context.Context, email string) (persistence.User, error)
	ListUsers(ctx context.Context) ([]persistence.User, error)
}

// UserHandler serves the administrative account endpoints.
type UserHandler struct {
	service   UserService
	responder responder
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(service UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: service, responder: newResponder(logger)}
}

type createUserRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createUserRequest
	if !h.responder.decodeJSON(ctx, w, r, &req) {
		return
	}

	user, err := h.service.CreateUser(ctx, application.CreateUserParams{
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, toUserResponse(user))
}

// GetByEmail handles GET /api/users/by-email?email=.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := r.URL.Query().Get("email")
	if email == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, codeBadRequest, "email query parameter is required")
		return
	}

	user, err := h.service.GetUserByEmail(ctx, email)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toUserResponse(user))
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.service.ListUsers(ctx)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	responses := make([]userResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, responses)
}
