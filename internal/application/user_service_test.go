package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/venue-booking/internal/persistence"
	"github.com/example/venue-booking/internal/testfixtures"
)

func TestUserService_CreateUser(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	ids := testfixtures.NewIDGenerator()

	t.Run("defaults the role and trims optional names", func(t *testing.T) {
		store := newUserStoreStub()
		svc := NewUserService(store, ids.NextFunc(), clock.NowFunc(), nil)

		first := "  Ada "
		blank := "   "
		user, err := svc.CreateUser(context.Background(), CreateUserParams{
			Email:     "ada@example.com",
			Password:  "secret",
			FirstName: &first,
			LastName:  &blank,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Role != "user" {
			t.Fatalf("expected default role, got %q", user.Role)
		}
		if user.FirstName == nil || *user.FirstName != "Ada" {
			t.Fatalf("expected trimmed first name, got %v", user.FirstName)
		}
		if user.LastName != nil {
			t.Fatalf("blank last name must become nil, got %v", user.LastName)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		store := newUserStoreStub(persistence.User{ID: "1", Email: "taken@example.com"})
		svc := NewUserService(store, ids.NextFunc(), clock.NowFunc(), nil)

		_, err := svc.CreateUser(context.Background(), CreateUserParams{
			Email:    "taken@example.com",
			Password: "secret",
		})
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestUserService_GetUserByEmail(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	store := newUserStoreStub(persistence.User{ID: "1", Email: "admin@example.com"})
	svc := NewUserService(store, nil, clock.NowFunc(), nil)

	t.Run("normalizes the query", func(t *testing.T) {
		user, err := svc.GetUserByEmail(context.Background(), " ADMIN@example.com ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != "1" {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	t.Run("unknown email yields not found", func(t *testing.T) {
		_, err := svc.GetUserByEmail(context.Background(), "ghost@example.com")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
