package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/venue-booking/internal/application"
	"github.com/example/venue-booking/internal/logging"
)

// Stable machine-readable error codes carried in the response envelope.
const (
	codeNotFound              = "NOT_FOUND"
	codeValidationFailed      = "VALIDATION_FAILED"
	codeInvalidCredentials    = "INVALID_CREDENTIALS"
	codeEmailTaken            = "EMAIL_TAKEN"
	codeNotAMember            = "NOT_A_MEMBER"
	codeSlotConflict          = "SLOT_CONFLICT"
	codeInvitationInvalid     = "INVITATION_INVALID"
	codeWrongRecipient        = "WRONG_RECIPIENT"
	codeInvitationAlreadyUsed = "INVITATION_ALREADY_USED"
	codeBadRequest            = "BAD_REQUEST"
	codeInternal              = "INTERNAL"
)

type errorResponse struct {
	ErrorCode string            `json:"errorCode"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string) {
	r.writeJSON(ctx, w, status, errorResponse{ErrorCode: code, Message: message})
}

// handleServiceError maps the application error taxonomy onto the wire
// contract. Unknown errors are logged and reported as 500 without detail.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		r.writeError(ctx, w, http.StatusInternalServerError, codeInternal, "internal error")
	case errors.Is(err, application.ErrNotFound):
		r.writeError(ctx, w, http.StatusNotFound, codeNotFound, "resource not found")
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeError(ctx, w, http.StatusUnauthorized, codeInvalidCredentials, "invalid email or password")
	case errors.Is(err, application.ErrNotAMember):
		r.writeError(ctx, w, http.StatusForbidden, codeNotAMember, "user is not a member of this venue")
	case errors.Is(err, application.ErrWrongRecipient):
		r.writeError(ctx, w, http.StatusForbidden, codeWrongRecipient, "invitation was issued to a different recipient")
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeError(ctx, w, http.StatusConflict, codeEmailTaken, "an account with this email already exists")
	case errors.Is(err, application.ErrSlotConflict):
		r.writeError(ctx, w, http.StatusConflict, codeSlotConflict, "the requested slot overlaps an existing booking")
	case errors.Is(err, application.ErrInvitationAlreadyUsed):
		r.writeError(ctx, w, http.StatusConflict, codeInvitationAlreadyUsed, "invitation has already been used")
	case errors.Is(err, application.ErrInvitationInvalid):
		r.writeError(ctx, w, http.StatusGone, codeInvitationInvalid, "invitation is revoked, expired, or exhausted")
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				ErrorCode: codeValidationFailed,
				Message:   "request validation failed",
				Errors:    vErr.FieldErrors,
			})
			return
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "error", err)
		r.writeError(ctx, w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

// decodeJSON parses a request body into dst, writing a 400 on failure.
func (r responder) decodeJSON(ctx context.Context, w http.ResponseWriter, req *http.Request, dst any) bool {
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		r.writeError(ctx, w, http.StatusBadRequest, codeBadRequest, "request body is not valid JSON")
		return false
	}
	return true
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}
