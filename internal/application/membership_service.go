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

// MembershipService manages the venue/user membership join records that gate
// booking access.
type MembershipService struct {
	memberships MembershipStore
	newID       func(prefix string) string
	now         func() time.Time
	logger      *slog.Logger
}

// NewMembershipService wires dependencies for membership operations.
func NewMembershipService(memberships MembershipStore, newID func(prefix string) string, now func() time.Time, logger *slog.Logger) *MembershipService {
	if newID == nil {
		newID = func(string) string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MembershipService{memberships: memberships, newID: newID, now: now, logger: defaultLogger(logger)}
}

func (s *MembershipService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MembershipService", operation, attrs...)
}

// CreateMembership joins a user to a venue. The operation is idempotent: if a
// membership for the pair already exists it is returned unchanged.
func (s *MembershipService) CreateMembership(ctx context.Context, input MembershipInput) (membership persistence.Membership, err error) {
	if s == nil || s.memberships == nil {
		return persistence.Membership{}, fmt.Errorf("membership service not configured")
	}

	logger := s.loggerWith(ctx, "CreateMembership", "venue_id", input.VenueID, "user_id", input.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "membership creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("membership_id", membership.ID).InfoContext(ctx, "membership ensured")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.VenueID) == "" {
		vErr.add("venueId", "venue id is required")
	}
	if strings.TrimSpace(input.UserID) == "" {
		vErr.add("userId", "user id is required")
	}
	if vErr.HasErrors() {
		return persistence.Membership{}, vErr
	}

	existing, findErr := s.memberships.FindMembership(ctx, input.VenueID, input.UserID)
	if findErr == nil {
		return existing, nil
	}
	if !errors.Is(findErr, persistence.ErrNotFound) {
		return persistence.Membership{}, findErr
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = DefaultMemberRole
	}

	membership = persistence.Membership{
		ID:           s.newID("membership"),
		VenueID:      input.VenueID,
		UserID:       input.UserID,
		Role:         role,
		JoinedAt:     s.now(),
		InvitationID: input.InvitationID,
	}

	if createErr := s.memberships.CreateMembership(ctx, membership); createErr != nil {
		// Lost the race against a concurrent join for the same pair.
		if errors.Is(createErr, persistence.ErrDuplicate) {
			return s.findAfterRace(ctx, input.VenueID, input.UserID, createErr)
		}
		return persistence.Membership{}, mapRepoError(createErr)
	}

	return membership, nil
}

func (s *MembershipService) findAfterRace(ctx context.Context, venueID, userID string, createErr error) (persistence.Membership, error) {
	existing, findErr := s.memberships.FindMembership(ctx, venueID, userID)
	if findErr != nil {
		return persistence.Membership{}, mapRepoError(createErr)
	}
	return existing, nil
}

// IsMember reports whether the user holds a membership in the venue.
func (s *MembershipService) IsMember(ctx context.Context, venueID, userID string) (bool, error) {
	if s == nil || s.memberships == nil {
		return false, fmt.Errorf("membership service not configured")
	}
	_, err := s.memberships.FindMembership(ctx, venueID, userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// ListMemberships enumerates memberships, optionally narrowed by user or
// venue.
func (s *MembershipService) ListMemberships(ctx context.Context, filter persistence.MembershipFilter) ([]persistence.Membership, error) {
	if s == nil || s.memberships == nil {
		return nil, fmt.Errorf("membership service not configured")
	}
	memberships, err := s.memberships.ListMemberships(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return memberships, nil
}
