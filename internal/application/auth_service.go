package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/example/venue-booking/internal/persistence"
)

// AuthService performs the pass-through credential check and self-service
// registration. Passwords are stored and compared verbatim; hardening the
// credential scheme is explicitly out of scope.
type AuthService struct {
	users  UserStore
	newID  func(prefix string) string
	now    func() time.Time
	logger *slog.Logger
}

// NewAuthService wires dependencies for authentication operations.
func NewAuthService(users UserStore, newID func(prefix string) string, now func() time.Time, logger *slog.Logger) *AuthService {
	if newID == nil {
		newID = func(string) string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{users: users, newID: newID, now: now, logger: defaultLogger(logger)}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Login matches the supplied credentials against the stored account. The
// caller learns only whether the pair matched, never which half failed.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (user persistence.User, err error) {
	if s == nil || s.users == nil {
		return persistence.User{}, fmt.Errorf("auth service not configured")
	}

	email := NormalizeEmail(params.Email)
	logger := s.loggerWith(ctx, "Login", "email", email)

	stored, lookupErr := s.users.GetUserByEmail(ctx, email)
	if lookupErr != nil {
		if errors.Is(lookupErr, persistence.ErrNotFound) {
			logger.InfoContext(ctx, "login rejected", "error_kind", ErrorKind(ErrInvalidCredentials))
			return persistence.User{}, ErrInvalidCredentials
		}
		logger.ErrorContext(ctx, "credential lookup failed", "error", lookupErr)
		return persistence.User{}, lookupErr
	}

	if subtle.ConstantTimeCompare([]byte(stored.Password), []byte(params.Password)) != 1 {
		logger.InfoContext(ctx, "login rejected", "error_kind", ErrorKind(ErrInvalidCredentials))
		return persistence.User{}, ErrInvalidCredentials
	}

	logger.With("user_id", stored.ID).InfoContext(ctx, "login succeeded")
	return stored, nil
}

// Register creates a new account from a self-service signup. The normalized
// email must be unused.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (user persistence.User, err error) {
	if s == nil || s.users == nil {
		return persistence.User{}, fmt.Errorf("auth service not configured")
	}

	email := NormalizeEmail(params.Email)
	logger := s.loggerWith(ctx, "Register", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "user registered")
	}()

	vErr := validateCredentials(email, params.Password)
	if strings.TrimSpace(params.Role) == "" {
		vErr.add("role", "role is required")
	}
	if vErr.HasErrors() {
		return persistence.User{}, vErr
	}

	if _, lookupErr := s.users.GetUserByEmail(ctx, email); lookupErr == nil {
		return persistence.User{}, ErrAlreadyExists
	} else if !errors.Is(lookupErr, persistence.ErrNotFound) {
		return persistence.User{}, lookupErr
	}

	user = persistence.User{
		ID:        s.newID("user"),
		Email:     email,
		Password:  params.Password,
		Role:      strings.TrimSpace(params.Role),
		CreatedAt: s.now(),
	}

	if createErr := s.users.CreateUser(ctx, user); createErr != nil {
		return persistence.User{}, mapRepoError(createErr)
	}

	return user, nil
}

func validateCredentials(email, password string) *ValidationError {
	vErr := &ValidationError{}
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		vErr.add("email", "email is invalid")
	}
	if password == "" {
		vErr.add("password", "password is required")
	}
	return vErr
}
