package invite

import (
	"testing"
	"time"

	"github.com/example/venue-booking/internal/persistence"
)

func TestIsValid(t *testing.T) {
	now := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

	base := func() persistence.Invitation {
		maxUses := 1
		return persistence.Invitation{
			ID:      "venue-1-invite-1",
			Status:  StatusPending,
			MaxUses: &maxUses,
		}
	}

	t.Run("fresh invitation is valid", func(t *testing.T) {
		if !IsValid(base(), now) {
			t.Fatal("expected valid invitation")
		}
	})

	t.Run("revoked invitation is invalid", func(t *testing.T) {
		inv := base()
		revoked := now.Add(-time.Hour)
		inv.RevokedAt = &revoked
		if IsValid(inv, now) {
			t.Fatal("revoked invitation must be invalid")
		}
	})

	t.Run("expired invitation is invalid", func(t *testing.T) {
		inv := base()
		expiry := now.Add(-time.Minute).Format(time.RFC3339)
		inv.ExpiresAt = &expiry
		if IsValid(inv, now) {
			t.Fatal("expired invitation must be invalid")
		}
	})

	t.Run("expiry exactly now is invalid", func(t *testing.T) {
		inv := base()
		expiry := now.Format(time.RFC3339)
		inv.ExpiresAt = &expiry
		if IsValid(inv, now) {
			t.Fatal("expiry at now must be invalid")
		}
	})

	t.Run("future expiry is valid", func(t *testing.T) {
		inv := base()
		expiry := now.Add(time.Hour).Format(time.RFC3339)
		inv.ExpiresAt = &expiry
		if !IsValid(inv, now) {
			t.Fatal("future expiry must be valid")
		}
	})

	t.Run("malformed expiry is invalid", func(t *testing.T) {
		inv := base()
		expiry := "next tuesday"
		inv.ExpiresAt = &expiry
		if IsValid(inv, now) {
			t.Fatal("unparseable expiry must be invalid")
		}
	})

	t.Run("exhausted uses are invalid", func(t *testing.T) {
		inv := base()
		inv.Uses = 1
		if IsValid(inv, now) {
			t.Fatal("exhausted invitation must be invalid")
		}
	})

	t.Run("remaining uses on a multi-use invitation are valid", func(t *testing.T) {
		inv := base()
		maxUses := 3
		inv.MaxUses = &maxUses
		inv.Uses = 2
		if !IsValid(inv, now) {
			t.Fatal("invitation with remaining uses must be valid")
		}
	})

	t.Run("nil max uses never exhausts", func(t *testing.T) {
		inv := base()
		inv.MaxUses = nil
		inv.Uses = 1000
		if !IsValid(inv, now) {
			t.Fatal("unlimited invitation must stay valid")
		}
	})
}
