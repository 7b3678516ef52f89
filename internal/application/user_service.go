package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/venue-booking/internal/persistence"
)

// UserService handles administrative account management.
type UserService struct {
	users  UserStore
	newID  func(prefix string) string
	now    func() time.Time
	logger *slog.Logger
}

// NewUserService wires dependencies for user operations.
func NewUserService(users UserStore, newID func(prefix string) string, now func() time.Time, logger *slog.Logger) *UserService {
	if newID == nil {
		newID = func(string) string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &UserService{users: users, newID: newID, now: now, logger: defaultLogger(logger)}
}

func (s *UserService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "UserService", operation, attrs...)
}

// CreateUser creates an account on behalf of an administrator. Role defaults
// to "user" and optional name fields are trimmed.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (user persistence.User, err error) {
	if s == nil || s.users == nil {
		return persistence.User{}, fmt.Errorf("user service not configured")
	}

	email := NormalizeEmail(params.Email)
	logger := s.loggerWith(ctx, "CreateUser", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "user creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "user created")
	}()

	vErr := validateCredentials(email, params.Password)
	if vErr.HasErrors() {
		return persistence.User{}, vErr
	}

	if _, lookupErr := s.users.GetUserByEmail(ctx, email); lookupErr == nil {
		return persistence.User{}, ErrAlreadyExists
	} else if !errors.Is(lookupErr, persistence.ErrNotFound) {
		return persistence.User{}, lookupErr
	}

	role := strings.TrimSpace(params.Role)
	if role == "" {
		role = "user"
	}

	user = persistence.User{
		ID:        s.newID("user"),
		Email:     email,
		Password:  params.Password,
		Role:      role,
		FirstName: trimOptional(params.FirstName),
		LastName:  trimOptional(params.LastName),
		CreatedAt: s.now(),
	}

	if createErr := s.users.CreateUser(ctx, user); createErr != nil {
		return persistence.User{}, mapRepoError(createErr)
	}

	return user, nil
}

// GetUserByEmail looks up an account by its normalized email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	if s == nil || s.users == nil {
		return persistence.User{}, fmt.Errorf("user service not configured")
	}

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return persistence.User{}, mapRepoError(err)
	}
	return user, nil
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]persistence.User, error) {
	if s == nil || s.users == nil {
		return nil, fmt.Errorf("user service not configured")
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return users, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
