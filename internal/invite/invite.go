// Package invite holds the pure invitation lifecycle rules: status values
// and the validity predicate applied before any redemption.
package invite

import (
	"time"

	"github.com/example/venue-booking/internal/persistence"
)

const (
	// StatusPending marks an invitation that has never been redeemed.
	StatusPending = "pending"
	// StatusConnected marks an invitation after its first successful
	// redemption. The status never returns to pending; the use counter is
	// tracked independently and governs validity for multi-use invitations.
	StatusConnected = "connected"
)

// DefaultMaxUses applies when an invitation is created without an explicit
// use limit.
const DefaultMaxUses = 1

// IsValid reports whether the invitation can still be redeemed at the given
// instant. Revocation is permanent. An expiry at or before now disables the
// invitation, and a malformed expiry timestamp is treated as expired rather
// than ignored. A use limit disables the invitation once the counter reaches
// it.
func IsValid(inv persistence.Invitation, now time.Time) bool {
	if inv.RevokedAt != nil {
		return false
	}
	if inv.ExpiresAt != nil && *inv.ExpiresAt != "" {
		expiry, err := time.Parse(time.RFC3339, *inv.ExpiresAt)
		if err != nil {
			return false
		}
		if !expiry.After(now) {
			return false
		}
	}
	if inv.MaxUses != nil && inv.Uses >= *inv.MaxUses {
		return false
	}
	return true
}
