package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/venue-booking/internal/persistence"
)

func openTestPool(t *testing.T) *ConnectionPool {
	t.Helper()

	pool, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	ctx := context.Background()
	if err := Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return pool
}

func seedGraph(t *testing.T, pool *ConnectionPool) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

	if err := Seed(ctx, pool, now); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	venues := NewVenueRepository(pool)
	if err := venues.CreateVenue(ctx, persistence.Venue{
		ID: "venue-1", Name: "Community Hall", Address: "1 Main Street",
		AdminID: "1", CreatedAt: now,
	}); err != nil {
		t.Fatalf("failed to create venue: %v", err)
	}

	rooms := NewRoomRepository(pool)
	if err := rooms.CreateRoom(ctx, persistence.Room{
		ID: "room-1", VenueID: "venue-1", Name: "Main Hall", Capacity: 20, CreatedAt: now,
	}); err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	pool := openTestPool(t)

	if err := Migrate(context.Background(), pool); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

func TestSeed(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	now := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

	if err := Seed(ctx, pool, now); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	users := NewUserRepository(pool)
	admin, err := users.GetUserByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	if admin.ID != "1" || admin.Role != "admin" {
		t.Fatalf("unexpected admin: %+v", admin)
	}

	// Seeding again must not duplicate or overwrite.
	if err := Seed(ctx, pool, now.Add(time.Hour)); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	all, err := users.ListUsers(ctx)
	if err != nil {
		t.Fatalf("failed to list users: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 seeded users, got %d", len(all))
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	now := time.Now().UTC()

	if err := users.CreateUser(ctx, persistence.User{
		ID: "u1", Email: "dup@example.com", Password: "x", Role: "user", CreatedAt: now,
	}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	err := users.CreateUser(ctx, persistence.User{
		ID: "u2", Email: "dup@example.com", Password: "y", Role: "user", CreatedAt: now,
	})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestBookingRepository_ConflictInsideTransaction(t *testing.T) {
	pool := openTestPool(t)
	seedGraph(t, pool)
	ctx := context.Background()
	bookings := NewBookingRepository(pool)
	now := time.Now().UTC()

	if err := bookings.CreateBooking(ctx, persistence.Booking{
		ID: "b1", RoomID: "room-1", UserID: "1",
		BookingDate: "2025-06-20", StartTime: "09:00", EndTime: "10:00",
		Status: "active", CreatedAt: now,
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	t.Run("overlapping insert is refused", func(t *testing.T) {
		err := bookings.CreateBooking(ctx, persistence.Booking{
			ID: "b2", RoomID: "room-1", UserID: "2",
			BookingDate: "2025-06-20", StartTime: "09:30", EndTime: "10:30",
			Status: "active", CreatedAt: now,
		})
		if !errors.Is(err, persistence.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("touching slot is accepted", func(t *testing.T) {
		if err := bookings.CreateBooking(ctx, persistence.Booking{
			ID: "b3", RoomID: "room-1", UserID: "2",
			BookingDate: "2025-06-20", StartTime: "10:00", EndTime: "11:00",
			Status: "active", CreatedAt: now,
		}); err != nil {
			t.Fatalf("touching booking failed: %v", err)
		}
	})

	t.Run("cancelled booking frees its slot", func(t *testing.T) {
		b1, err := bookings.GetBooking(ctx, "b1")
		if err != nil {
			t.Fatalf("failed to load booking: %v", err)
		}
		b1.Status = "cancelled"
		if err := bookings.UpdateBooking(ctx, b1); err != nil {
			t.Fatalf("failed to cancel: %v", err)
		}

		if err := bookings.CreateBooking(ctx, persistence.Booking{
			ID: "b4", RoomID: "room-1", UserID: "2",
			BookingDate: "2025-06-20", StartTime: "09:00", EndTime: "10:00",
			Status: "active", CreatedAt: now,
		}); err != nil {
			t.Fatalf("rebooking a freed slot failed: %v", err)
		}
	})

	t.Run("active listing is ordered and filtered", func(t *testing.T) {
		active, err := bookings.ListActiveBookings(ctx, "room-1", "2025-06-20")
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(active) != 2 {
			t.Fatalf("expected 2 active bookings, got %d", len(active))
		}
		if active[0].StartTime > active[1].StartTime {
			t.Fatalf("expected start-time order, got %v then %v", active[0].StartTime, active[1].StartTime)
		}
	})
}

func TestRoomRepository_DeleteCascadesBookings(t *testing.T) {
	pool := openTestPool(t)
	seedGraph(t, pool)
	ctx := context.Background()
	rooms := NewRoomRepository(pool)
	bookings := NewBookingRepository(pool)
	now := time.Now().UTC()

	if err := bookings.CreateBooking(ctx, persistence.Booking{
		ID: "b1", RoomID: "room-1", UserID: "1",
		BookingDate: "2025-06-20", StartTime: "09:00", EndTime: "10:00",
		Status: "active", CreatedAt: now,
	}); err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	if err := rooms.DeleteRoom(ctx, "room-1"); err != nil {
		t.Fatalf("failed to delete room: %v", err)
	}

	if _, err := rooms.GetRoom(ctx, "room-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected room gone, got %v", err)
	}
	if _, err := bookings.GetBooking(ctx, "b1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected booking gone, got %v", err)
	}
}

func TestMembershipRepository_UniquePair(t *testing.T) {
	pool := openTestPool(t)
	seedGraph(t, pool)
	ctx := context.Background()
	memberships := NewMembershipRepository(pool)
	now := time.Now().UTC()

	if err := memberships.CreateMembership(ctx, persistence.Membership{
		ID: "m1", VenueID: "venue-1", UserID: "2", Role: "member", JoinedAt: now,
	}); err != nil {
		t.Fatalf("first membership failed: %v", err)
	}

	err := memberships.CreateMembership(ctx, persistence.Membership{
		ID: "m2", VenueID: "venue-1", UserID: "2", Role: "member", JoinedAt: now,
	})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	found, err := memberships.FindMembership(ctx, "venue-1", "2")
	if err != nil {
		t.Fatalf("failed to find membership: %v", err)
	}
	if found.ID != "m1" {
		t.Fatalf("unexpected membership: %+v", found)
	}
}

func TestInvitationRepository_RoundTrip(t *testing.T) {
	pool := openTestPool(t)
	seedGraph(t, pool)
	ctx := context.Background()
	invitations := NewInvitationRepository(pool)
	now := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

	maxUses := 1
	expiry := now.Add(24 * time.Hour).Format(time.RFC3339)
	if err := invitations.CreateInvitation(ctx, persistence.Invitation{
		ID: "venue-1-invite-1", VenueID: "venue-1", VenueName: "Community Hall",
		Token: "token-abc", CreatedByUserID: "1",
		InviteeEmail: "guest@example.com", CreatedAt: now,
		ExpiresAt: &expiry, MaxUses: &maxUses, Status: "pending",
	}); err != nil {
		t.Fatalf("failed to create invitation: %v", err)
	}

	loaded, err := invitations.GetInvitationByToken(ctx, "token-abc")
	if err != nil {
		t.Fatalf("failed to load by token: %v", err)
	}
	if loaded.ID != "venue-1-invite-1" || loaded.VenueName != "Community Hall" {
		t.Fatalf("unexpected invitation: %+v", loaded)
	}
	if loaded.ExpiresAt == nil || *loaded.ExpiresAt != expiry {
		t.Fatalf("expiry did not round-trip: %v", loaded.ExpiresAt)
	}

	connectedAt := now.Add(time.Hour)
	userID := "2"
	loaded.Uses = 1
	loaded.Status = "connected"
	loaded.ConnectedAt = &connectedAt
	loaded.ConnectedUserID = &userID
	if err := invitations.UpdateInvitation(ctx, loaded); err != nil {
		t.Fatalf("failed to update invitation: %v", err)
	}

	updated, err := invitations.GetInvitation(ctx, "venue-1-invite-1")
	if err != nil {
		t.Fatalf("failed to reload invitation: %v", err)
	}
	if updated.Status != "connected" || updated.Uses != 1 {
		t.Fatalf("unexpected state: %+v", updated)
	}
	if updated.ConnectedAt == nil || !updated.ConnectedAt.Equal(connectedAt) {
		t.Fatalf("connected at did not round-trip: %v", updated.ConnectedAt)
	}
}
