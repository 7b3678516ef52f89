package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/venue-booking/internal/invite"
	"github.com/example/venue-booking/internal/persistence"
)

// InvitationService manages the invitation lifecycle: issuing, inspecting,
// revoking, and redeeming venue invitations.
type InvitationService struct {
	invitations InvitationStore
	memberships MembershipStore
	venues      VenueStore
	newID       func(prefix string) string
	newToken    func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewInvitationService wires dependencies for invitation operations.
func NewInvitationService(invitations InvitationStore, memberships MembershipStore, venues VenueStore, newID func(prefix string) string, newToken func() string, now func() time.Time, logger *slog.Logger) *InvitationService {
	if newID == nil {
		newID = func(string) string { return "" }
	}
	if newToken == nil {
		newToken = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &InvitationService{
		invitations: invitations,
		memberships: memberships,
		venues:      venues,
		newID:       newID,
		newToken:    newToken,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *InvitationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "InvitationService", operation, attrs...)
}

// CreateInvitation issues an invitation for a venue. The venue must exist;
// its name is snapshotted onto the invitation so the preview endpoint can
// show it without another lookup. MaxUses defaults to a single use.
func (s *InvitationService) CreateInvitation(ctx context.Context, input InvitationInput) (invitation persistence.Invitation, err error) {
	if s == nil || s.invitations == nil {
		return persistence.Invitation{}, fmt.Errorf("invitation service not configured")
	}

	logger := s.loggerWith(ctx, "CreateInvitation", "venue_id", input.VenueID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "invitation creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("invitation_id", invitation.ID).InfoContext(ctx, "invitation created")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.VenueID) == "" {
		vErr.add("venueId", "venue id is required")
	}
	if strings.TrimSpace(input.InviteeEmail) == "" {
		vErr.add("inviteeEmail", "invitee email is required")
	}
	if input.MaxUses != nil && *input.MaxUses < 1 {
		vErr.add("maxUses", "max uses must be at least 1")
	}
	if vErr.HasErrors() {
		return persistence.Invitation{}, vErr
	}

	venueName := input.VenueName
	if s.venues != nil {
		venue, getErr := s.venues.GetVenue(ctx, input.VenueID)
		if getErr != nil {
			return persistence.Invitation{}, mapRepoError(getErr)
		}
		venueName = venue.Name
	}

	maxUses := invite.DefaultMaxUses
	if input.MaxUses != nil {
		maxUses = *input.MaxUses
	}

	invitation = persistence.Invitation{
		ID:               s.newID(input.VenueID + "-invite"),
		VenueID:          input.VenueID,
		VenueName:        venueName,
		Token:            s.newToken(),
		CreatedByUserID:  input.CreatedByUserID,
		InviteeUserID:    input.InviteeUserID,
		InviteeFirstName: strings.TrimSpace(input.InviteeFirstName),
		InviteeLastName:  strings.TrimSpace(input.InviteeLastName),
		InviteeEmail:     NormalizeEmail(input.InviteeEmail),
		CreatedAt:        s.now(),
		ExpiresAt:        input.ExpiresAt,
		MaxUses:          &maxUses,
		Uses:             0,
		Status:           invite.StatusPending,
	}

	if createErr := s.invitations.CreateInvitation(ctx, invitation); createErr != nil {
		return persistence.Invitation{}, mapRepoError(createErr)
	}

	return invitation, nil
}

// GetInvitationByToken returns the invitation behind a share token. Used by
// the unauthenticated preview endpoint.
func (s *InvitationService) GetInvitationByToken(ctx context.Context, token string) (persistence.Invitation, error) {
	if s == nil || s.invitations == nil {
		return persistence.Invitation{}, fmt.Errorf("invitation service not configured")
	}
	invitation, err := s.invitations.GetInvitationByToken(ctx, token)
	if err != nil {
		return persistence.Invitation{}, mapRepoError(err)
	}
	return invitation, nil
}

// ListInvitations enumerates the invitations issued for a venue.
func (s *InvitationService) ListInvitations(ctx context.Context, venueID string) ([]persistence.Invitation, error) {
	if s == nil || s.invitations == nil {
		return nil, fmt.Errorf("invitation service not configured")
	}
	invitations, err := s.invitations.ListInvitations(ctx, venueID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return invitations, nil
}

// UpdateInvitation adjusts the expiry or use limit of an existing
// invitation. Nil fields are left unchanged; a non-nil empty ExpiresAt
// clears the expiry.
func (s *InvitationService) UpdateInvitation(ctx context.Context, invitationID string, patch InvitationPatch) (invitation persistence.Invitation, err error) {
	if s == nil || s.invitations == nil {
		return persistence.Invitation{}, fmt.Errorf("invitation service not configured")
	}

	logger := s.loggerWith(ctx, "UpdateInvitation", "invitation_id", invitationID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "invitation update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "invitation updated")
	}()

	existing, getErr := s.invitations.GetInvitation(ctx, invitationID)
	if getErr != nil {
		return persistence.Invitation{}, mapRepoError(getErr)
	}

	if patch.MaxUses != nil && *patch.MaxUses < 1 {
		vErr := &ValidationError{}
		vErr.add("maxUses", "max uses must be at least 1")
		return persistence.Invitation{}, vErr
	}

	updated := existing
	if patch.ExpiresAt != nil {
		if strings.TrimSpace(*patch.ExpiresAt) == "" {
			updated.ExpiresAt = nil
		} else {
			updated.ExpiresAt = patch.ExpiresAt
		}
	}
	if patch.MaxUses != nil {
		updated.MaxUses = patch.MaxUses
	}

	if updateErr := s.invitations.UpdateInvitation(ctx, updated); updateErr != nil {
		return persistence.Invitation{}, mapRepoError(updateErr)
	}

	return updated, nil
}

// RevokeInvitation stamps the invitation as revoked. Revoked invitations
// fail every later redemption attempt.
func (s *InvitationService) RevokeInvitation(ctx context.Context, invitationID string) (invitation persistence.Invitation, err error) {
	if s == nil || s.invitations == nil {
		return persistence.Invitation{}, fmt.Errorf("invitation service not configured")
	}

	logger := s.loggerWith(ctx, "RevokeInvitation", "invitation_id", invitationID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "invitation revoke failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "invitation revoked")
	}()

	existing, getErr := s.invitations.GetInvitation(ctx, invitationID)
	if getErr != nil {
		return persistence.Invitation{}, mapRepoError(getErr)
	}

	if existing.RevokedAt == nil {
		revokedAt := s.now()
		existing.RevokedAt = &revokedAt
		if updateErr := s.invitations.UpdateInvitation(ctx, existing); updateErr != nil {
			return persistence.Invitation{}, mapRepoError(updateErr)
		}
	}

	return existing, nil
}

// Redeem connects a user to the invitation's venue. The checks run in a
// fixed order so every failure mode maps to one stable outcome:
//
//  1. unknown token
//  2. invitation bound to a different user id
//  3. already connected (idempotent success for the same user)
//  4. invitee email does not match the caller
//  5. revoked, expired, or exhausted
//
// On success the membership is ensured, the use counter advances, and the
// invitation is marked connected to the caller.
func (s *InvitationService) Redeem(ctx context.Context, params RedeemParams) (result RedeemResult, err error) {
	if s == nil || s.invitations == nil || s.memberships == nil {
		return RedeemResult{}, fmt.Errorf("invitation service not configured")
	}

	logger := s.loggerWith(ctx, "Redeem", "user_id", params.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "redemption failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("invitation_id", result.InvitationID, "venue_id", result.VenueID).InfoContext(ctx, "invitation redeemed")
	}()

	invitation, getErr := s.invitations.GetInvitationByToken(ctx, params.Token)
	if getErr != nil {
		return RedeemResult{}, mapRepoError(getErr)
	}

	if invitation.InviteeUserID != nil && *invitation.InviteeUserID != params.UserID {
		return RedeemResult{}, ErrWrongRecipient
	}

	if invitation.Status == invite.StatusConnected {
		if invitation.ConnectedUserID != nil && *invitation.ConnectedUserID == params.UserID {
			return RedeemResult{VenueID: invitation.VenueID, InvitationID: invitation.ID}, nil
		}
		return RedeemResult{}, ErrInvitationAlreadyUsed
	}

	if params.UserEmail != "" && invitation.InviteeEmail != "" &&
		invitation.InviteeEmail != NormalizeEmail(params.UserEmail) {
		return RedeemResult{}, ErrWrongRecipient
	}

	if !invite.IsValid(invitation, s.now()) {
		return RedeemResult{}, ErrInvitationInvalid
	}

	if err := s.ensureMembership(ctx, invitation, params.UserID); err != nil {
		return RedeemResult{}, err
	}

	connectedAt := s.now()
	userID := params.UserID
	invitation.Uses++
	invitation.Status = invite.StatusConnected
	invitation.ConnectedAt = &connectedAt
	invitation.ConnectedUserID = &userID

	if updateErr := s.invitations.UpdateInvitation(ctx, invitation); updateErr != nil {
		return RedeemResult{}, mapRepoError(updateErr)
	}

	return RedeemResult{VenueID: invitation.VenueID, InvitationID: invitation.ID}, nil
}

func (s *InvitationService) ensureMembership(ctx context.Context, invitation persistence.Invitation, userID string) error {
	_, findErr := s.memberships.FindMembership(ctx, invitation.VenueID, userID)
	if findErr == nil {
		return nil
	}
	if !errors.Is(findErr, persistence.ErrNotFound) {
		return findErr
	}

	invitationID := invitation.ID
	membership := persistence.Membership{
		ID:           s.newID("membership"),
		VenueID:      invitation.VenueID,
		UserID:       userID,
		Role:         DefaultMemberRole,
		JoinedAt:     s.now(),
		InvitationID: &invitationID,
	}
	if createErr := s.memberships.CreateMembership(ctx, membership); createErr != nil {
		if errors.Is(createErr, persistence.ErrDuplicate) {
			return nil
		}
		return mapRepoError(createErr)
	}
	return nil
}
