package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/venue-booking/internal/persistence"
	"github.com/example/venue-booking/internal/testfixtures"
)

type userStoreStub struct {
	byEmail map[string]persistence.User
	byID    map[string]persistence.User
	created []persistence.User

	createErr error
	lookupErr error
}

func newUserStoreStub(users ...persistence.User) *userStoreStub {
	s := &userStoreStub{
		byEmail: make(map[string]persistence.User),
		byID:    make(map[string]persistence.User),
	}
	for _, u := range users {
		s.byEmail[u.Email] = u
		s.byID[u.ID] = u
	}
	return s
}

func (s *userStoreStub) CreateUser(ctx context.Context, user persistence.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.byEmail[user.Email]; exists {
		return persistence.ErrDuplicate
	}
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	s.created = append(s.created, user)
	return nil
}

func (s *userStoreStub) GetUser(ctx context.Context, id string) (persistence.User, error) {
	if s.lookupErr != nil {
		return persistence.User{}, s.lookupErr
	}
	user, ok := s.byID[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (s *userStoreStub) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	if s.lookupErr != nil {
		return persistence.User{}, s.lookupErr
	}
	user, ok := s.byEmail[email]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (s *userStoreStub) ListUsers(ctx context.Context) ([]persistence.User, error) {
	out := make([]persistence.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	return out, nil
}

func TestAuthService_Login(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	stored := persistence.User{
		ID:       "1",
		Email:    "admin@example.com",
		Password: "admin123",
		Role:     "admin",
	}

	t.Run("matching credentials return the account", func(t *testing.T) {
		svc := NewAuthService(newUserStoreStub(stored), nil, clock.NowFunc(), nil)

		user, err := svc.Login(context.Background(), LoginParams{
			Email:    "admin@example.com",
			Password: "admin123",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != "1" {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	t.Run("email is normalized before lookup", func(t *testing.T) {
		svc := NewAuthService(newUserStoreStub(stored), nil, clock.NowFunc(), nil)

		if _, err := svc.Login(context.Background(), LoginParams{
			Email:    "  ADMIN@Example.COM ",
			Password: "admin123",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		svc := NewAuthService(newUserStoreStub(stored), nil, clock.NowFunc(), nil)

		_, err := svc.Login(context.Background(), LoginParams{
			Email:    "admin@example.com",
			Password: "nope",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email yields the same error as wrong password", func(t *testing.T) {
		svc := NewAuthService(newUserStoreStub(stored), nil, clock.NowFunc(), nil)

		_, err := svc.Login(context.Background(), LoginParams{
			Email:    "ghost@example.com",
			Password: "whatever",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_Register(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	ids := testfixtures.NewIDGenerator()

	t.Run("creates an account with normalized email", func(t *testing.T) {
		store := newUserStoreStub()
		svc := NewAuthService(store, ids.NextFunc(), clock.NowFunc(), nil)

		user, err := svc.Register(context.Background(), RegisterParams{
			Email:    " New@Example.com ",
			Password: "secret",
			Role:     "user",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "new@example.com" {
			t.Fatalf("expected normalized email, got %q", user.Email)
		}
		if len(store.created) != 1 {
			t.Fatalf("expected one created user, got %d", len(store.created))
		}
	})

	t.Run("duplicate normalized email is rejected", func(t *testing.T) {
		store := newUserStoreStub(persistence.User{ID: "1", Email: "taken@example.com"})
		svc := NewAuthService(store, ids.NextFunc(), clock.NowFunc(), nil)

		_, err := svc.Register(context.Background(), RegisterParams{
			Email:    "TAKEN@example.com",
			Password: "secret",
			Role:     "user",
		})
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("validates email, password, and role", func(t *testing.T) {
		svc := NewAuthService(newUserStoreStub(), ids.NextFunc(), clock.NowFunc(), nil)

		_, err := svc.Register(context.Background(), RegisterParams{
			Email:    "not-an-email",
			Password: "",
			Role:     " ",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"email", "password", "role"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})
}
